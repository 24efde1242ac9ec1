// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package simulator

import "time"

// Clock supplies the current instant. The engine takes a Clock instead of
// calling time.Now so mission-time rendering and cadence decisions are
// testable with a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock implementation used outside tests.
func SystemClock() Clock { return systemClock{} }
