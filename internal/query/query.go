// Package query turns a URL query string into a filter/sort/paging
// descriptor executable by the store layer.
//
// /books?limit=5&sort=-price&offset=15&price<10&category=fantasy becomes
//
//	Criteria: {price: {$lt: 10}, category: "fantasy"}
//	Sort:     {price: -1}
//	Skip:     15, Limit: 5
package query

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Query struct {
	Criteria bson.M
	Sort     bson.D
	Skip     int64
	Limit    int64
}

// reserved keys are paging/sorting controls, never filter fields.
func reserved(k string) bool {
	switch k {
	case "sort", "limit", "offset", "skip":
		return true
	}
	return false
}

var comparisons = []struct {
	tok string
	op  string
}{
	{"<=", "$lte"},
	{">=", "$gte"},
	{"!=", "$ne"},
	{"<", "$lt"},
	{">", "$gt"},
	{"=", ""}, // plain equality
}

// Parse reads the raw (still escaped) query string. It has to work on the
// raw form because comparison operators like price<10 carry no '=' and are
// lost by url.Values.
func Parse(rawQuery string) (Query, error) {
	q := Query{Criteria: bson.M{}, Limit: DefaultLimit}

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, op, val, err := splitPair(pair)
		if err != nil {
			return Query{}, err
		}

		if reserved(key) {
			if err := q.applyControl(key, val); err != nil {
				return Query{}, err
			}
			continue
		}

		q.applyFilter(key, op, val)
	}

	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Skip < 0 {
		q.Skip = 0
	}
	return q, nil
}

// scanPair looks for the leftmost comparison token in s.
func scanPair(s string) (key, op, val string, found bool) {
	idx := len(s)
	for _, c := range comparisons {
		if i := strings.Index(s, c.tok); i >= 0 && i < idx {
			idx, op, found = i, c.op, true
			key, val = s[:i], s[i+len(c.tok):]
		}
	}
	return key, op, val, found
}

func splitPair(pair string) (key, op, val string, err error) {
	key, op, val, found := scanPair(pair)
	if found {
		if key, err = url.QueryUnescape(key); err != nil {
			return "", "", "", fmt.Errorf("bad query key %q: %w", pair, err)
		}
		if val, err = url.QueryUnescape(val); err != nil {
			return "", "", "", fmt.Errorf("bad query value %q: %w", pair, err)
		}
	} else {
		// clients routinely percent-encode the whole segment (price%3C10),
		// hiding the operator from the raw scan. Decode and scan again.
		decoded, derr := url.QueryUnescape(pair)
		if derr != nil {
			return "", "", "", fmt.Errorf("bad query segment %q: %w", pair, derr)
		}
		key, op, val, found = scanPair(decoded)
		if !found {
			// bare key with no operator: treat as "key exists" equality on true
			key, op, val = decoded, "", "true"
		}
	}
	if key == "" {
		return "", "", "", fmt.Errorf("empty field in query segment %q", pair)
	}
	return key, op, val, nil
}

func (q *Query) applyControl(key, val string) error {
	switch key {
	case "sort":
		for _, f := range strings.Split(val, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			dir := int32(1)
			if strings.HasPrefix(f, "-") {
				dir, f = -1, f[1:]
			}
			q.Sort = append(q.Sort, bson.E{Key: f, Value: dir})
		}
	case "limit":
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("limit: %w", err)
		}
		q.Limit = n
	case "offset", "skip":
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		q.Skip = n
	}
	return nil
}

// applyFilter merges a constraint into the criteria. Several constraints on
// the same field collapse into one operator document (price>5&price<10), and
// repeated plain equalities fold into an $in (category=a&category=b).
func (q *Query) applyFilter(key, op, val string) {
	typed := typeValue(val)

	if op == "" {
		switch prev := q.Criteria[key].(type) {
		case nil:
			q.Criteria[key] = typed
		case bson.M:
			if in, ok := prev["$in"].(bson.A); ok {
				prev["$in"] = append(in, typed)
			} else {
				// equality after range operators replaces them
				q.Criteria[key] = typed
			}
		default:
			q.Criteria[key] = bson.M{"$in": bson.A{prev, typed}}
		}
		return
	}

	m, ok := q.Criteria[key].(bson.M)
	if !ok {
		m = bson.M{}
		if prev, had := q.Criteria[key]; had {
			m["$eq"] = prev
		}
		q.Criteria[key] = m
	}
	m[op] = typed
}

// typeValue casts query string values the way the store expects them:
// integers and floats become numbers, true/false become booleans.
func typeValue(s string) interface{} {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// PageTotal is the number of pages needed for total matches at this limit.
func (q Query) PageTotal(total int64) int64 {
	if total <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(total) / float64(q.Limit)))
}

// Links builds pagination URLs for the current descriptor.
func (q Query) Links(base string, total int64) map[string]string {
	links := map[string]string{
		"first": fmt.Sprintf("%s?limit=%d&offset=0", base, q.Limit),
	}
	last := (q.PageTotal(total) - 1) * q.Limit
	if last < 0 {
		last = 0
	}
	links["last"] = fmt.Sprintf("%s?limit=%d&offset=%d", base, q.Limit, last)
	if q.Skip > 0 {
		prev := q.Skip - q.Limit
		if prev < 0 {
			prev = 0
		}
		links["prev"] = fmt.Sprintf("%s?limit=%d&offset=%d", base, q.Limit, prev)
	}
	if q.Skip+q.Limit < total {
		links["next"] = fmt.Sprintf("%s?limit=%d&offset=%d", base, q.Limit, q.Skip+q.Limit)
	}
	return links
}
