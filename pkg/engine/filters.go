package engine

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// Built-in filters for configuration templates. Registration is global to
// pongo2, so it is guarded and idempotent.
func registerDefaultFilters() {
	if !pongo2.FilterExists("random_string") {
		_ = pongo2.RegisterFilter("random_string", filterRandomString)
	}
	if !pongo2.FilterExists("reverse_host") {
		_ = pongo2.RegisterFilter("reverse_host", filterReverseHost)
	}
	if !pongo2.FilterExists("common_domain") {
		_ = pongo2.RegisterFilter("common_domain", filterCommonDomain)
	}
	if !pongo2.FilterExists("list_if") {
		_ = pongo2.RegisterFilter("list_if", filterListIf)
	}
}

const randomStringCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// filterRandomString generates a random alphanumeric string of the given
// length: {{ 24|random_string }}.
func filterRandomString(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	length := in.Integer()
	if length <= 0 {
		return pongo2.AsValue(""), nil
	}

	var sb strings.Builder
	sb.Grow(length)
	max := big.NewInt(int64(len(randomStringCharset)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:random_string", OrigError: err}
		}
		sb.WriteByte(randomStringCharset[n.Int64()])
	}
	return pongo2.AsValue(sb.String()), nil
}

// filterReverseHost reverses the labels of a hostname:
// {{ "maps.app.local"|reverse_host }} -> "local.app.maps".
func filterReverseHost(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	labels := strings.Split(in.String(), ".")
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}
	return pongo2.AsValue(strings.Join(labels, ".")), nil
}

// filterCommonDomain returns the longest common domain suffix of two hosts:
// {{ HOST|common_domain:API_HOST }}.
func filterCommonDomain(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	left := strings.Split(in.String(), ".")
	right := strings.Split(param.String(), ".")

	var common []string
	for i, j := len(left)-1, len(right)-1; i >= 0 && j >= 0; i, j = i-1, j-1 {
		if left[i] != right[j] {
			break
		}
		common = append([]string{left[i]}, common...)
	}
	return pongo2.AsValue(strings.Join(common, ".")), nil
}

// filterListIf takes a list of [value, enabled] pairs and returns a JSON
// array of the values whose flag is truthy. Useful for feature lists inside
// JSON or YAML templates.
func filterListIf(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	items, ok := in.Interface().([]any)
	if !ok {
		return pongo2.AsValue("[]"), nil
	}

	selected := make([]any, 0, len(items))
	for _, item := range items {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			continue
		}
		if pongo2.AsValue(pair[1]).IsTrue() {
			selected = append(selected, pair[0])
		}
	}

	raw, err := json.Marshal(selected)
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:list_if", OrigError: err}
	}
	return pongo2.AsValue(string(raw)), nil
}
