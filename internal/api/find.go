package api

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"reflect"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-linkstation/internal/apperr"
	"github.com/joeblew999/plat-linkstation/internal/linkstation"
)

// MaxBodyBytes bounds the request body of the find endpoint.
const MaxBodyBytes = 1 << 20

const formContentType = "application/x-www-form-urlencoded"

// FindRequest documents the body of the find endpoint. The body itself is
// received undecoded so that validation sees exactly what the client sent.
type FindRequest struct {
	DevicePoint       linkstation.DevicePoint        `json:"devicePoint" doc:"Device location"`
	LinkStationPoints []linkstation.LinkStationPoint `json:"linkStationPoints" doc:"Candidate link stations"`
}

// FindInput carries the raw find request body.
type FindInput struct {
	ContentType string `header:"Content-Type"`
	RawBody     []byte
}

// registerFind registers POST {base}/linkstation/findLinkStationForDevice.
func (h *APIHandler) registerFind(api huma.API) {
	registry := api.OpenAPI().Components.Schemas
	body := &huma.RequestBody{
		Description: "Device point and candidate link stations. Any shape is accepted and checked by the handler.",
		Content: map[string]*huma.MediaType{
			"application/json": {Schema: registry.Schema(reflect.TypeOf(FindRequest{}), true, "FindRequest")},
			formContentType: {Schema: &huma.Schema{
				Type:                 huma.TypeObject,
				AdditionalProperties: &huma.Schema{Type: huma.TypeString},
			}},
		},
	}

	huma.Register(api, huma.Operation{
		OperationID:      "find-link-station-for-device",
		Method:           http.MethodPost,
		Path:             h.basePath + FindPath,
		Summary:          "Find the best link station for a device",
		Description:      "Returns the link station offering the device point the most power.",
		Tags:             []string{"linkstation"},
		RequestBody:      body,
		MaxBodyBytes:     MaxBodyBytes,
		SkipValidateBody: true,
		Errors:           []int{http.StatusBadRequest, http.StatusNotFound},
	}, h.FindForDevice)

	// huma marks raw bodies as required and documents them as octet
	// streams; an absent body is answered by validation instead.
	body.Required = false
	delete(body.Content, "application/octet-stream")
}

// FindForDevice validates the raw body and returns the best station outcome.
func (h *APIHandler) FindForDevice(ctx context.Context, input *FindInput) (*OutcomeOutput, error) {
	payload, err := DecodePayload(input.ContentType, input.RawBody)
	if err != nil {
		return nil, err
	}
	out, err := h.finder.Find(payload)
	if err != nil {
		return nil, err
	}
	return &OutcomeOutput{Body: out}, nil
}

// DecodePayload turns a request body into a payload. URL-encoded forms are
// converted to a JSON object whose values are strings, or string arrays for
// repeated keys. Any other body is passed through unchanged.
func DecodePayload(contentType string, body []byte) (linkstation.Payload, error) {
	ct, _, _ := mime.ParseMediaType(contentType)
	if ct != formContentType {
		return linkstation.Payload(body), nil
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, apperr.Malformed(err)
	}
	form := make(map[string]any, len(values))
	for k, v := range values {
		if len(v) == 1 {
			form[k] = v[0]
		} else {
			form[k] = v
		}
	}
	b, err := json.Marshal(form)
	if err != nil {
		return nil, apperr.Malformed(err)
	}
	return linkstation.Payload(b), nil
}
