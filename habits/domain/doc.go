// Package domain define os tipos, erros e contratos do serviço de hábitos.
//
// Este pacote não depende de net/http nem de implementações concretas.
package domain
