// Package infra contém implementações concretas para os contratos do pacote domain.
//
// Exemplos:
//   - MemoryStore: sequência ordenada de hábitos em memória
//   - ChanPool: semáforo simples usado como gate de escrita
//   - MemoryStatsStore / RedisStatsStore: contadores de mutação
package infra
