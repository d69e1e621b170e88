package units

import (
	"math"
	"testing"
)

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		name     string
		speedMPS float64
		units    string
		expected float64
	}{
		{"10 m/s to mph", 10.0, MPH, 22.3694},
		{"10 m/s to kmph", 10.0, KMPH, 36.0},
		{"10 m/s to mps", 10.0, MPS, 10.0},
		{"unknown units default to mps", 10.0, "unknown", 10.0},
		{"highway speed 31.29 m/s to mph", 31.29, MPH, 70.0},
		{"city speed 13.89 m/s to kmph", 13.89, KMPH, 50.004},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertSpeed(tt.speedMPS, tt.units)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("ConvertSpeed(%f, %s) = %f, want %f", tt.speedMPS, tt.units, result, tt.expected)
			}
		})
	}
}

func TestIsValidSystem(t *testing.T) {
	tests := []struct {
		system   string
		expected bool
	}{
		{Metric, true},
		{Imperial, true},
		{"", false},
		{"Metric", false},
	}

	for _, tt := range tests {
		if got := IsValidSystem(tt.system); got != tt.expected {
			t.Errorf("IsValidSystem(%q) = %v, want %v", tt.system, got, tt.expected)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		metres   float64
		system   string
		expected string
	}{
		{123, Metric, "120 meters"},
		{3, Metric, "10 meters"},
		{-5, Metric, "10 meters"},
		{1500, Metric, "1.5 kilometers"},
		{100, Imperial, "350 feet"},
		{1000, Imperial, "0.6 miles"},
	}

	for _, tt := range tests {
		if got := FormatDistance(tt.metres, tt.system); got != tt.expected {
			t.Errorf("FormatDistance(%v, %s) = %q, want %q", tt.metres, tt.system, got, tt.expected)
		}
	}
}

func TestFormatSpeed(t *testing.T) {
	if got := FormatSpeed(25, Metric); got != "90 kilometers per hour" {
		t.Errorf("FormatSpeed metric = %q", got)
	}
	if got := FormatSpeed(25, Imperial); got != "56 miles per hour" {
		t.Errorf("FormatSpeed imperial = %q", got)
	}
}
