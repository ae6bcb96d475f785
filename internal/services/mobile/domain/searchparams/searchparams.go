// Package searchparams builds the API query parameters of the mobile search
// gateways, adding what is needed to fetch Wikibase descriptions.
package searchparams

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	// KeyProp holds the list of query property modules.
	KeyProp = "prop"
	// KeyTerms holds the pipe-delimited Wikibase terms to fetch.
	KeyTerms = "wbptterms"

	propPageTerms   = "pageterms"
	termDescription = "description"
)

// ErrInvalidFeature reports a feature that is not configured to show
// Wikibase descriptions.
var ErrInvalidFeature = errors.New("feature does not show Wikibase descriptions")

// InvalidFeatureError names the rejected feature.
type InvalidFeatureError struct {
	Feature string
}

func (e *InvalidFeatureError) Error() string {
	return fmt.Sprintf("%q isn't a feature that shows Wikibase descriptions", e.Feature)
}

// Is matches ErrInvalidFeature.
func (e *InvalidFeatureError) Is(target error) bool {
	return target == ErrInvalidFeature
}

// Params is a set of API parameters. The prop key always holds a []string
// in values returned by Extend.
type Params map[string]any

// Config holds the site-wide search settings.
type Config struct {
	// DisplayWikibaseDescriptions maps each known feature to whether it
	// shows descriptions.
	DisplayWikibaseDescriptions map[string]bool
	// SearchAPIParams is merged last, over every caller fragment.
	SearchAPIParams Params
	// QueryPropModules is added to prop after merging.
	QueryPropModules []string
}

// Extend merges fragments left to right over {prop: []}, then the
// configured search parameters. Later fragments replace earlier keys. The
// configured prop modules are added to prop afterwards, and when feature
// shows descriptions pageterms and the description term are added too.
//
// Extend fails with ErrInvalidFeature for a feature missing from
// cfg.DisplayWikibaseDescriptions. Fragments are not modified.
func Extend(cfg *Config, feature string, fragments ...Params) (Params, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	showDescriptions, ok := cfg.DisplayWikibaseDescriptions[feature]
	if !ok {
		return nil, &InvalidFeatureError{Feature: feature}
	}

	result := Params{KeyProp: []string{}}
	for _, fragment := range fragments {
		merge(result, fragment)
	}
	merge(result, cfg.SearchAPIParams)

	props := appendUnique(toList(result[KeyProp]), cfg.QueryPropModules...)
	if showDescriptions {
		props = appendUnique(props, propPageTerms)
		result[KeyTerms] = addTerm(result[KeyTerms], termDescription)
	}
	result[KeyProp] = props
	return result, nil
}

func merge(dst, src Params) {
	for key, value := range src {
		dst[key] = cloneValue(value)
	}
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case []string:
		return slices.Clone(v)
	case []any:
		return slices.Clone(v)
	case map[string]any:
		return maps.Clone(v)
	case Params:
		return maps.Clone(v)
	default:
		return value
	}
}

// toList reads a prop value given as a list or a pipe-delimited string.
func toList(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return slices.Clone(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if v == "" {
			return []string{}
		}
		return strings.Split(v, "|")
	default:
		return []string{fmt.Sprint(v)}
	}
}

func appendUnique(list []string, items ...string) []string {
	for _, item := range items {
		if item != "" && !slices.Contains(list, item) {
			list = append(list, item)
		}
	}
	return list
}

func addTerm(value any, term string) string {
	return strings.Join(appendUnique(toList(value), term), "|")
}

// Values encodes p as an API query string. Lists are pipe-joined, true
// becomes "1", and false or nil values are omitted as the API expects.
func (p Params) Values() url.Values {
	out := url.Values{}
	for _, key := range slices.Sorted(maps.Keys(p)) {
		switch v := p[key].(type) {
		case nil:
		case bool:
			if v {
				out.Set(key, "1")
			}
		case string:
			out.Set(key, v)
		case int:
			out.Set(key, strconv.Itoa(v))
		case int64:
			out.Set(key, strconv.FormatInt(v, 10))
		case float64:
			out.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		case []string:
			out.Set(key, strings.Join(v, "|"))
		case []any:
			out.Set(key, strings.Join(toList(v), "|"))
		default:
			out.Set(key, fmt.Sprint(v))
		}
	}
	return out
}
