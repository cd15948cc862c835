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

// Package predict calls the remote expression model that produces the
// reference and alternate signal tracks a scan consumes.
package predict

import (
	"context"

	"github.com/exascience/elscan/signal"
	"github.com/exascience/elscan/variants"
)

// SequenceLength1MB is the interval width the expression model
// predicts over.
const SequenceLength1MB = 1 << 20

// Predictor produces reference and alternate signal tracks for a
// variant within an interval, under a given tissue ontology term.
type Predictor interface {
	PredictVariant(ctx context.Context, interval signal.Interval, v variants.Variant, tissue string) (ref, alt *signal.TrackSet, err error)
}
