// Package httpapi expõe o serviço de hábitos em HTTP+JSON (gorilla/mux).
//
// Rotas:
//
//	GET  /habits               -> ["a", "b"]
//	POST /habits               {habit}        -> {message, habits}
//	POST /habits/delete        {index}        -> {message, deletedHabit, deletedIndex}
//	POST /habits/undo          {deletedHabit} -> {message, habits}
//	GET  /habits/last-deleted  -> {deletedHabit}
//	GET  /stats                -> contadores (se o backend suportar snapshot)
//	GET  /healthz              -> {status}
//
// Erros saem sempre como {"message": "..."}: 400 validação/duplicado,
// 404 índice fora do intervalo, 503 gate de escrita indisponível.
package httpapi
