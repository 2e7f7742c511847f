// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Leaf - Brand color, selections, success
var Leaf = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}

// LeafDeep - Darker green for backgrounds
var LeafDeep = lipgloss.AdaptiveColor{Light: "#166534", Dark: "#14532D"}

// Sky - Info, links, key hints
var Sky = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Soil - Analysis block accents
var Soil = lipgloss.AdaptiveColor{Light: "#92400E", Dark: "#D6A76C"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors, high severity
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, medium severity
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE AND TEXT
// =============================================================================

var (
	Surface       = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1A1F1A"}
	SurfaceDim    = lipgloss.AdaptiveColor{Light: "#F3F4F1", Dark: "#141814"}
	Overlay       = lipgloss.AdaptiveColor{Light: "#E2E6DF", Dark: "#2E352E"}
	TextPrimary   = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5EBE3"}
	TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#AAB5A8"}
	TextMuted     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7568"}
	TextInverse   = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0F130F"}
)

// =============================================================================
// MESSAGE BUBBLES
// =============================================================================

var (
	UserBubbleBg   = lipgloss.AdaptiveColor{Light: "#DCFCE7", Dark: "#166534"}
	UserBubbleFg   = lipgloss.AdaptiveColor{Light: "#14532D", Dark: "#F0FDF4"}
	AgentBubbleBg  = lipgloss.AdaptiveColor{Light: "#F5F5F4", Dark: "#2A302A"}
	AgentBubbleFg  = lipgloss.AdaptiveColor{Light: "#292524", Dark: "#E7ECE5"}
	ErrorBubbleFg  = Rose
	ErrorBubbleBdr = lipgloss.AdaptiveColor{Light: "#FDA4AF", Dark: "#9F1239"}
)

// SeverityColor maps a severity label from the analysis service to a color.
// Unknown labels are shown in the secondary text color.
func SeverityColor(severity string) lipgloss.AdaptiveColor {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "high", "severe", "critical":
		return Rose
	case "medium", "moderate":
		return Amber
	case "low", "mild", "none":
		return Leaf
	default:
		return TextSecondary
	}
}
