// Package application contém os casos de uso do serviço de hábitos.
//
// Ele depende apenas do pacote domain (e do logger) e não conhece net/http.
// Ex.: Service.Add(ctx, h) valida, checa duplicidade e anexa ao store.
package application
