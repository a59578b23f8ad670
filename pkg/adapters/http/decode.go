package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/sanitize"
)

// decodeContact reads the submitted field map into a ContactRequest, rejecting
// unknown keys, and keeps only the fields the configured form declares.
func (s *Server) decodeContact(r *http.Request) (map[string]string, error) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	var req domain.ContactRequest
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &req,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnknownField, err)
	}

	spec := s.svc.Spec()
	values := make(map[string]string)
	for id, v := range req.Values() {
		if _, ok := spec.Field(id); !ok {
			continue
		}
		clean, err := sanitize.Input(v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", id, err)
		}
		values[id] = clean
	}
	return values, nil
}
