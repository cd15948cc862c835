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

package scan

// Artifact references one rendered plot. Every render call returns a
// self-contained artifact; renderers hold no shared drawing state
// between calls. The ID is part of the artifact's path, so two render
// calls never produce the same path.
type Artifact struct {
	ID   string
	Path string
}

// Renderer renders plots for scan results. A nil Renderer on a Runner
// disables rendering altogether.
type Renderer interface {
	// OverlayPlot renders the aligned reference and alternate signal
	// of a unit around its variant, over a window of plotWidth bases.
	OverlayPlot(unit *UnitResult, plotWidth int32, name string) (Artifact, error)
	// ScorePlot renders the window scores of one track with its
	// threshold guides and detected regions shaded.
	ScorePlot(tr TrackResult, threshold float64, title, name string) (Artifact, error)
}
