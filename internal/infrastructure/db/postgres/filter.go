package postgres

import (
	"fmt"
	"strings"

	"github.com/baechuer/account-gateway/internal/application/account"
)

var filterColumns = map[account.Field]string{
	account.FieldIDNumber: `"IdNumber"`,
	account.FieldFullName: `"FullName"`,
	account.FieldRole:     `"Role"`,
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereClause renders f as a WHERE clause with positional args. Prefixes are
// matched with LIKE, so the match is case-sensitive.
func whereClause(f account.Filter) (string, []any) {
	if len(f) == 0 {
		return "", nil
	}
	conds := make([]string, 0, len(f))
	args := make([]any, 0, len(f))
	for _, p := range f {
		col, ok := filterColumns[p.Field]
		if !ok {
			continue
		}
		args = append(args, likeEscaper.Replace(p.Prefix)+"%")
		conds = append(conds, fmt.Sprintf(`%s LIKE $%d ESCAPE '\'`, col, len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
