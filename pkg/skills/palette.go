package skills

import (
	"strings"

	"github.com/skillfield/skillfield/pkg/errors"
)

// Default gradient for skills that name no colors.
const (
	DefaultFrom = "purple-500"
	DefaultTo   = "indigo-600"
)

// palette maps utility-class color names ("cyan-400") to hex.
var palette = map[string]string{
	"red-400": "#f87171", "red-500": "#ef4444", "red-600": "#dc2626",
	"red-700": "#b91c1c", "red-800": "#991b1b", "red-900": "#7f1d1d",

	"orange-400": "#fb923c", "orange-500": "#f97316", "orange-600": "#ea580c",
	"orange-700": "#c2410c", "orange-800": "#9a3412", "orange-900": "#7c2d12",

	"amber-400": "#fbbf24", "amber-500": "#f59e0b", "amber-600": "#d97706",
	"amber-700": "#b45309", "amber-800": "#92400e", "amber-900": "#78350f",

	"yellow-400": "#facc15", "yellow-500": "#eab308", "yellow-600": "#ca8a04",
	"yellow-700": "#a16207", "yellow-800": "#854d0e", "yellow-900": "#713f12",

	"green-400": "#4ade80", "green-500": "#22c55e", "green-600": "#16a34a",
	"green-700": "#15803d", "green-800": "#166534", "green-900": "#14532d",

	"emerald-400": "#34d399", "emerald-500": "#10b981", "emerald-600": "#059669",
	"emerald-700": "#047857", "emerald-800": "#065f46", "emerald-900": "#064e3b",

	"teal-400": "#2dd4bf", "teal-500": "#14b8a6", "teal-600": "#0d9488",
	"teal-700": "#0f766e", "teal-800": "#115e59", "teal-900": "#134e4a",

	"cyan-400": "#22d3ee", "cyan-500": "#06b6d4", "cyan-600": "#0891b2",
	"cyan-700": "#0e7490", "cyan-800": "#155e75", "cyan-900": "#164e63",

	"blue-400": "#60a5fa", "blue-500": "#3b82f6", "blue-600": "#2563eb",
	"blue-700": "#1d4ed8", "blue-800": "#1e40af", "blue-900": "#1e3a8a",

	"indigo-400": "#818cf8", "indigo-500": "#6366f1", "indigo-600": "#4f46e5",
	"indigo-700": "#4338ca", "indigo-800": "#3730a3", "indigo-900": "#312e81",

	"purple-400": "#c084fc", "purple-500": "#a855f7", "purple-600": "#9333ea",
	"purple-700": "#7e22ce", "purple-800": "#6b21a8", "purple-900": "#581c87",

	"pink-400": "#f472b6", "pink-500": "#ec4899", "pink-600": "#db2777",
	"pink-700": "#be185d", "pink-800": "#9d174d", "pink-900": "#831843",

	"gray-400": "#9ca3af", "gray-500": "#6b7280", "gray-600": "#4b5563",
	"gray-700": "#374151", "gray-800": "#1f2937", "gray-900": "#111827",
}

// ResolveColor turns a palette name or a hex color into lowercase hex.
func ResolveColor(c string) (string, error) {
	c = strings.TrimSpace(c)
	if errors.IsHexColor(c) {
		return strings.ToLower(c), nil
	}
	if hex, ok := palette[strings.ToLower(c)]; ok {
		return hex, nil
	}
	return "", errors.New(errors.ErrCodeInvalidColor, "unknown color %q (use #rrggbb or a palette name like cyan-400)", c)
}

// mustResolve is for colors known to be in the palette.
func mustResolve(c string) string {
	hex, err := ResolveColor(c)
	if err != nil {
		panic(err)
	}
	return hex
}
