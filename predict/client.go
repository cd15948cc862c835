// elScan: a tool for scanning predicted variant expression effects.
// Copyright (c) 2024-2025 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elscan/blob/master/LICENSE.txt>.

package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/exascience/elscan/signal"
	"github.com/exascience/elscan/variants"
)

// Client calls a remote expression model over HTTP. The request asks
// for RNA_SEQ output for one variant within one interval under one
// ontology term; the response carries the reference and alternate
// predictions as per-track value arrays.
type Client struct {
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient returns a client for the given endpoint. The API key is
// sent as a bearer token on every request.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		Endpoint:   endpoint,
		APIKey:     apiKey,
		HTTPClient: http.DefaultClient,
	}
}

type predictRequest struct {
	Chromosome       string   `json:"chromosome"`
	Position         int32    `json:"position"`
	ReferenceBases   string   `json:"reference_bases"`
	AlternateBases   string   `json:"alternate_bases"`
	Start            int32    `json:"start"`
	End              int32    `json:"end"`
	OntologyTerms    []string `json:"ontology_terms"`
	RequestedOutputs []string `json:"requested_outputs"`
}

type wireTrack struct {
	Name   string    `json:"name"`
	Strand string    `json:"strand"`
	Values []float64 `json:"values"`
}

type wireTrackSet struct {
	Tracks []wireTrack `json:"tracks"`
}

type predictResponse struct {
	Reference wireTrackSet `json:"reference"`
	Alternate wireTrackSet `json:"alternate"`
}

// PredictVariant implements Predictor.
func (c *Client) PredictVariant(ctx context.Context, interval signal.Interval, v variants.Variant, tissue string) (*signal.TrackSet, *signal.TrackSet, error) {
	body, err := json.Marshal(predictRequest{
		Chromosome:       v.Chrom,
		Position:         v.Pos,
		ReferenceBases:   v.Ref,
		AlternateBases:   v.Alt,
		Start:            interval.Start,
		End:              interval.End,
		OntologyTerms:    []string{tissue},
		RequestedOutputs: []string{"RNA_SEQ"},
	})
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("prediction request failed: %v", resp.Status)
	}
	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, nil, err
	}
	ref, err := toTrackSet(decoded.Reference, interval)
	if err != nil {
		return nil, nil, err
	}
	alt, err := toTrackSet(decoded.Alternate, interval)
	if err != nil {
		return nil, nil, err
	}
	return ref, alt, nil
}

func toTrackSet(wire wireTrackSet, interval signal.Interval) (*signal.TrackSet, error) {
	ts := &signal.TrackSet{Interval: interval}
	for _, track := range wire.Tracks {
		if len(track.Values) != interval.Len() {
			return nil, fmt.Errorf("track %v has %d values for a %d-base interval", track.Name, len(track.Values), interval.Len())
		}
		name := track.Name
		if name != "" && track.Strand != "" {
			name = track.Name + ": " + track.Strand
		}
		ts.Names = append(ts.Names, name)
		ts.Values = append(ts.Values, track.Values)
	}
	return ts, nil
}
