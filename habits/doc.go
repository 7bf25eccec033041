// Package habits agrupa o serviço de hábitos (lista ordenada em memória com
// list/add/delete/undo).
//
// Visão geral (camadas):
//
//   - domain: tipos, erros e contratos (sem dependência de net/http)
//   - application: casos de uso (Service) com a regra de duplicidade e o slot de undo
//   - infra: implementações concretas (store em memória, semáforo, estatísticas)
//   - httpapi: rotas HTTP+JSON e tradução de erros para status
//
// Fluxo de uma mutação:
//
//  1. O handler decodifica o corpo JSON
//  2. Chama o Service, que adquire o gate de escrita (capacidade 1)
//  3. O Service valida, altera o store e registra o evento de estatística
//  4. O handler responde 200 ou traduz o erro (400/404/503)
package habits
