// Package reconcile сравнивает сохранённую коллекцию дочерних строк с новой
// и строит план изменений: что вставить, что обновить, что удалить.
package reconcile

// Plan - результат сравнения коллекций
type Plan[K comparable, T any] struct {
	Insert []T
	Update []T
	Delete []K
}

// Empty возвращает true, если применять нечего
func (p Plan[K, T]) Empty() bool {
	return len(p.Insert) == 0 && len(p.Update) == 0 && len(p.Delete) == 0
}

// Diff сопоставляет incoming с existing по ключу.
//
// key возвращает (ключ, true) для строки со стабильной идентичностью; строки с
// ok=false (например, новая строка без id) всегда попадают в Insert.
// Входящая строка с ключом, которого нет среди existing, тоже вставляется.
// Совпавшие строки попадают в Update только если equal возвращает false.
// Повторный ключ во входящей коллекции вставляется как новая строка.
// Строки existing, не сопоставленные ни с одной входящей, попадают в Delete.
// Порядок Insert и Update совпадает с порядком incoming, порядок Delete - с existing.
func Diff[K comparable, T any](
	existing, incoming []T,
	key func(T) (K, bool),
	equal func(stored, next T) bool,
) Plan[K, T] {
	var plan Plan[K, T]

	stored := make(map[K]T, len(existing))
	for _, row := range existing {
		if k, ok := key(row); ok {
			stored[k] = row
		}
	}

	matched := make(map[K]struct{}, len(incoming))
	for _, row := range incoming {
		k, ok := key(row)
		if !ok {
			plan.Insert = append(plan.Insert, row)
			continue
		}

		prev, found := stored[k]
		if _, dup := matched[k]; !found || dup {
			plan.Insert = append(plan.Insert, row)
			continue
		}

		matched[k] = struct{}{}
		if !equal(prev, row) {
			plan.Update = append(plan.Update, row)
		}
	}

	for _, row := range existing {
		k, ok := key(row)
		if !ok {
			continue
		}
		if _, keep := matched[k]; !keep {
			plan.Delete = append(plan.Delete, k)
		}
	}

	return plan
}
