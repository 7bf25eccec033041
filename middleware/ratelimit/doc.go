// Package ratelimit fornece um limitador de escrita (token bucket por cliente)
// para net/http.
//
// Só as rotas de mutação (POST por padrão) consomem tokens; leituras como
// GET /habits passam direto, já que o cliente refaz o fetch da lista inteira
// depois de cada mutação.
//
// Fluxo:
//
//  1. Extrai a chave do cliente (header/XFF/IP)
//  2. Obtém o limiter da chave no ClientStore e decide allow/deny
//  3. Se bloqueado, responde 429 com Retry-After e corpo {"message": ...}
//  4. Se permitido, chama o próximo handler
package ratelimit
