package sqlite

import "github.com/Masterminds/squirrel"

// sqlBuilder is the shared statement builder for dynamically composed queries.
var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
