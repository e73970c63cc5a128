// Package httpclient dispatches requests to the llmops console backend.
package httpclient

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// normalizeBaseURL ensures base has a scheme and no trailing slash.
func normalizeBaseURL(base string) string {
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return strings.TrimRight(base, "/")
}

// buildURL joins base and path and, for GET only, appends params as a query
// string. The separator is "?" unless the URL already carries a query.
func buildURL(base, path string, method Method, params map[string]any) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := base + path

	if method != MethodGet || len(params) == 0 {
		return u
	}

	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + encodeParams(params)
}

// encodeParams renders params as key=value pairs joined by "&", keys sorted.
func encodeParams(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, escapeComponent(k)+"="+escapeComponent(formatScalar(params[k])))
	}
	return strings.Join(pairs, "&")
}

// componentUnescaper restores what encodeURIComponent leaves alone but
// url.QueryEscape encodes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent percent-encodes s like encodeURIComponent.
func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

func formatScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
