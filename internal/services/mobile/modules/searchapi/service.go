package searchapi

import (
	"errors"
	"net/url"
	"strings"

	"github.com/louisbranch/mobilefrontend/internal/platform/telemetry/metrics"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/searchparams"
	module "github.com/louisbranch/mobilefrontend/internal/services/mobile/module"
	apperrors "github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/errors"
	mobilei18n "github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/i18n"
)

const (
	featureParam = "feature"

	outcomeOK      = "ok"
	outcomeInvalid = "invalid_feature"

	// unknownFeature labels every rejected feature.
	unknownFeature = "unknown"
)

// SearchParams is the JSON body of a search parameter response.
type SearchParams struct {
	Params searchparams.Params `json:"params"`
	// Query is Params encoded as an API query string.
	Query string `json:"query"`
}

type service struct {
	config  *searchparams.Config
	metrics *metrics.Recorder
}

func newService(deps module.Dependencies) service {
	cfg := deps.Search
	if cfg == nil {
		cfg = &searchparams.Config{}
	}
	return service{config: cfg, metrics: deps.Metrics}
}

func (s service) extend(feature string, fragment searchparams.Params) (SearchParams, error) {
	feature = strings.TrimSpace(feature)
	params, err := searchparams.Extend(s.config, feature, fragment)
	if err != nil {
		s.metrics.SearchParams(unknownFeature, outcomeInvalid)
		if errors.Is(err, searchparams.ErrInvalidFeature) {
			return SearchParams{}, apperrors.Wrap(apperrors.KindInvalidInput, "errors.invalid_feature", err)
		}
		return SearchParams{}, err
	}
	s.metrics.SearchParams(feature, outcomeOK)
	return SearchParams{Params: params, Query: params.Values().Encode()}, nil
}

// fragmentFromQuery turns the request query into API parameters. Repeated
// keys become lists; the feature and interface language keys are dropped.
func fragmentFromQuery(query url.Values) searchparams.Params {
	fragment := searchparams.Params{}
	for key, values := range query {
		if key == featureParam || key == mobilei18n.LangParam || len(values) == 0 {
			continue
		}
		if len(values) == 1 {
			fragment[key] = values[0]
			continue
		}
		fragment[key] = append([]string(nil), values...)
	}
	return fragment
}
