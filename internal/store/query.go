package store

import (
	"fmt"
	"strconv"
	"strings"
)

// cond is a single predicate. Every ? in sql is bound, in order, to the
// matching value in args.
type cond struct {
	sql  string
	args []any
}

func pred(sql string, args ...any) cond {
	return cond{sql: sql, args: args}
}

// statement accumulates SQL text together with its positional arguments.
// Placeholders are numbered in the order values are bound, so clauses can
// be appended in any combination without tracking indices by hand.
type statement struct {
	buf  strings.Builder
	args []any
}

// bind appends v to the argument list and returns its placeholder.
func (s *statement) bind(v any) string {
	s.args = append(s.args, v)
	return "$" + strconv.Itoa(len(s.args))
}

// write appends sql, replacing each ? with a placeholder for the next value
// in args. Fragments must not contain a literal ?.
func (s *statement) write(sql string, args ...any) {
	n := 0
	for {
		i := strings.IndexByte(sql, '?')
		if i < 0 {
			break
		}
		if n >= len(args) {
			panic(fmt.Sprintf("store: fragment %q has more placeholders than args (%d)", sql, len(args)))
		}
		s.buf.WriteString(sql[:i])
		s.buf.WriteString(s.bind(args[n]))
		n++
		sql = sql[i+1:]
	}
	if n != len(args) {
		panic(fmt.Sprintf("store: %d args for %d placeholders", len(args), n))
	}
	s.buf.WriteString(sql)
}

// clause writes keyword followed by conds joined with AND. Nothing is written
// for an empty list.
func (s *statement) clause(keyword string, conds []cond) {
	for i, c := range conds {
		if i == 0 {
			s.buf.WriteString(" " + keyword + " ")
		} else {
			s.buf.WriteString(" AND ")
		}
		s.write(c.sql, c.args...)
	}
}

func (s *statement) String() string { return s.buf.String() }

func (s *statement) Args() []any { return s.args }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into an ILIKE pattern matching any value that
// contains s literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
