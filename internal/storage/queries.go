package storage

const (
	itemExistsQuery = `SELECT EXISTS(SELECT 1 FROM items WHERE name = $1)`

	getItemCountQuery = `SELECT COUNT(*) FROM items`

	deleteAllItemsQuery = `DELETE FROM items`
)
