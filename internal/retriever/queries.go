package retriever

// nearest-neighbor search over one embedding column. The column name is
// interpolated from the fixed provider-to-column map in the storage
// package; $1 is the query vector, $2 the row limit. Ties on distance
// break by id so result order is deterministic.
const vectorSearchQueryTemplate = `
	SELECT
		id,
		name,
		item_data,
		%[1]s <=> $1::vector AS similarity
	FROM items
	WHERE %[1]s IS NOT NULL
	ORDER BY similarity, id
	LIMIT $2
`
