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

// Package variants implements the variant records that drive a scan,
// and loading them from TSV/CSV/VCF tables.
package variants

import (
	"fmt"

	"github.com/exascience/elscan/signal"
)

// Variant is a point mutation against the reference genome.
type Variant struct {
	Chrom string
	Pos   int32 // 1-based
	Ref   string
	Alt   string
}

// LengthAlter returns len(Ref) - len(Alt): positive for a deletion,
// negative for an insertion, zero for a substitution.
func (v Variant) LengthAlter() int {
	return len(v.Ref) - len(v.Alt)
}

// ReferenceInterval returns the half-open genomic interval covered by
// the reference bases of the variant.
func (v Variant) ReferenceInterval() signal.Interval {
	return signal.Interval{Start: v.Pos - 1, End: v.Pos - 1 + int32(len(v.Ref))}
}

func (v Variant) String() string {
	return fmt.Sprintf("%s:%d:%s>%s", v.Chrom, v.Pos, v.Ref, v.Alt)
}
