// Package fulfillment derives an order's fulfillment stage and timeline from
// the order and the delivery notes and invoices linked to it.
package fulfillment

// Document is any ERP record identified by its name
type Document interface {
	Identifier() string
}

// Dedupe collapses documents sharing an identifier. The last occurrence of an
// identifier wins; the result is ordered by first occurrence.
func Dedupe[T Document](docs []T) []T {
	out := make([]T, 0, len(docs))
	index := make(map[string]int, len(docs))
	for _, doc := range docs {
		id := doc.Identifier()
		if i, ok := index[id]; ok {
			out[i] = doc
			continue
		}
		index[id] = len(out)
		out = append(out, doc)
	}
	return out
}
