package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightbnb/internal/model"
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func ptr[T any](v T) *T { return &v }

func TestStatementNumbersPlaceholdersInOrder(t *testing.T) {
	var st statement
	st.write("SELECT * FROM t")
	st.clause("WHERE", []cond{pred("a = ?", 1), pred("b BETWEEN ? AND ?", 2, 3)})
	st.clause("HAVING", nil)
	st.write(" LIMIT ?", 4)

	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b BETWEEN $2 AND $3 LIMIT $4", st.String())
	assert.Equal(t, []any{1, 2, 3, 4}, st.Args())
}

func TestStatementArgMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		var st statement
		st.write("a = ? AND b = ?", 1)
	})
	assert.Panics(t, func() {
		var st statement
		st.write("a = ?", 1, 2)
	})
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%Vancouver%", containsPattern("Vancouver"))
	assert.Equal(t, `%100\%\_off\\%`, containsPattern(`100%_off\`))
}

func TestPropertySearchNoFilters(t *testing.T) {
	sql, args := propertySearch(model.PropertyFilter{}, 0)

	assert.NotContains(t, sql, "WHERE")
	assert.NotContains(t, sql, "HAVING")
	assert.Contains(t, squash(sql), "JOIN property_reviews r ON r.property_id = p.id")
	assert.NotContains(t, sql, "LEFT JOIN")
	assert.True(t, strings.HasSuffix(squash(sql), "GROUP BY p.id ORDER BY p.cost_per_night, p.id LIMIT $1"))
	assert.Equal(t, []any{DefaultLimit}, args)
}

func TestPropertySearchAllFilters(t *testing.T) {
	f := model.PropertyFilter{
		City:             ptr("couver"),
		OwnerID:          ptr(int64(7)),
		MinPricePerNight: ptr(int64(10000)),
		MaxPricePerNight: ptr(int64(50000)),
		MinRating:        ptr(4.0),
	}
	sql, args := propertySearch(f, 5)

	want := "SELECT " + squash(propertyColumns) + ", AVG(r.rating)::float8 AS average_rating" +
		" FROM properties p JOIN property_reviews r ON r.property_id = p.id" +
		" WHERE p.city ILIKE $1 AND p.owner_id = $2 AND p.cost_per_night BETWEEN $3 AND $4" +
		" GROUP BY p.id HAVING AVG(r.rating)::float8 >= $5" +
		" ORDER BY p.cost_per_night, p.id LIMIT $6"
	assert.Equal(t, want, squash(sql))
	assert.Equal(t, []any{"%couver%", int64(7), int64(10000), int64(50000), 4.0, 5}, args)
}

func TestPropertySearchOpenPriceBounds(t *testing.T) {
	t.Run("min only", func(t *testing.T) {
		_, args := propertySearch(model.PropertyFilter{MinPricePerNight: ptr(int64(100))}, 10)
		assert.Equal(t, []any{int64(100), int64(MaxPricePerNight), 10}, args)
	})
	t.Run("max only", func(t *testing.T) {
		_, args := propertySearch(model.PropertyFilter{MaxPricePerNight: ptr(int64(900))}, 10)
		assert.Equal(t, []any{int64(0), int64(900), 10}, args)
	})
	t.Run("out of range", func(t *testing.T) {
		_, args := propertySearch(model.PropertyFilter{
			MinPricePerNight: ptr(int64(-5)),
			MaxPricePerNight: ptr(int64(1) << 40),
		}, 10)
		assert.Equal(t, []any{int64(0), int64(MaxPricePerNight), 10}, args)
	})
}

func TestPropertySearchIncludeUnrated(t *testing.T) {
	sql, _ := propertySearch(model.PropertyFilter{IncludeUnrated: true, MinRating: ptr(3.5)}, 10)
	s := squash(sql)
	assert.Contains(t, s, "LEFT JOIN property_reviews r")
	assert.Contains(t, s, "COALESCE(AVG(r.rating), 0)::float8 AS average_rating")
	assert.Contains(t, s, "HAVING COALESCE(AVG(r.rating), 0)::float8 >= $1")
}

// Every subset of the five filters must produce exactly its own predicates,
// joined correctly and numbered 1..n in order.
func TestPropertySearchFilterSubsets(t *testing.T) {
	const (
		city = 1 << iota
		owner
		minPrice
		maxPrice
		rating
	)

	for mask := 0; mask < 1<<5; mask++ {
		t.Run(fmt.Sprintf("mask=%05b", mask), func(t *testing.T) {
			var f model.PropertyFilter
			if mask&city != 0 {
				f.City = ptr("Toronto")
			}
			if mask&owner != 0 {
				f.OwnerID = ptr(int64(3))
			}
			if mask&minPrice != 0 {
				f.MinPricePerNight = ptr(int64(5000))
			}
			if mask&maxPrice != 0 {
				f.MaxPricePerNight = ptr(int64(20000))
			}
			if mask&rating != 0 {
				f.MinRating = ptr(4.5)
			}

			sql, args := propertySearch(f, 20)
			s := squash(sql)

			assert.Equal(t, mask&city != 0, strings.Contains(s, "p.city ILIKE"))
			assert.Equal(t, mask&owner != 0, strings.Contains(s, "p.owner_id ="))
			assert.Equal(t, mask&(minPrice|maxPrice) != 0, strings.Contains(s, "p.cost_per_night BETWEEN"))
			assert.Equal(t, mask&rating != 0, strings.Contains(s, "HAVING"))
			assert.Equal(t, mask&(city|owner|minPrice|maxPrice) != 0, strings.Contains(s, " WHERE "))

			assert.Equal(t, 1, strings.Count(s, " FROM properties p "))
			assert.LessOrEqual(t, strings.Count(s, " WHERE "), 1)
			assert.NotContains(t, s, "WHERE AND")
			assert.NotContains(t, s, "AND AND")
			assert.NotContains(t, s, "AND GROUP")
			assert.False(t, strings.HasSuffix(strings.Split(s, " GROUP BY ")[0], " AND"))

			matches := placeholderRe.FindAllStringSubmatch(s, -1)
			require.Len(t, matches, len(args))
			for i, m := range matches {
				n, err := strconv.Atoi(m[1])
				require.NoError(t, err)
				assert.Equal(t, i+1, n, "placeholder %d out of order", i)
			}
			assert.Equal(t, 20, args[len(args)-1])
		})
	}
}
