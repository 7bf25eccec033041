package domain

// Habit é um rótulo de texto não vazio. Igualdade é comparação exata de string.
type Habit string

func (h Habit) Empty() bool { return h == "" }

// HabitStore é uma sequência ordenada de hábitos; o índice é a chave de remoção.
//
// Implementações devem ser seguras para uso concorrente, mas não garantem
// atomicidade entre chamadas (ex: Contains seguido de Append). Isso fica a
// cargo da camada application.
type HabitStore interface {
	// List retorna uma cópia do conteúdo atual, nunca nil.
	List() []Habit
	Contains(h Habit) bool
	Append(h Habit)
	// RemoveAt remove a entrada em i. Fora do intervalo retorna *NotFoundError.
	RemoveAt(i int) (Habit, error)
	Len() int
}

// Strings converte para []string (formato do JSON da API).
func Strings(hs []Habit) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = string(h)
	}
	return out
}
