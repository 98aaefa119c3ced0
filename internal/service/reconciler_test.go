package service

import (
	"reflect"
	"testing"
)

func TestStaleRefs(t *testing.T) {
	testCases := []struct {
		name     string
		oldRefs  []string
		newRefs  []string
		expected []string
	}{
		{
			name:     "dropped reference is stale",
			oldRefs:  []string{"a.png", "b.png"},
			newRefs:  []string{"b.png"},
			expected: []string{"a.png"},
		},
		{
			name:     "identical sets yield nothing",
			oldRefs:  []string{"a.png", "b.png"},
			newRefs:  []string{"a.png", "b.png"},
			expected: nil,
		},
		{
			name:     "all replaced",
			oldRefs:  []string{"a.png", "b.png"},
			newRefs:  []string{"c.png", "d.png"},
			expected: []string{"a.png", "b.png"},
		},
		{
			name:     "no old refs",
			oldRefs:  nil,
			newRefs:  []string{"a.png"},
			expected: nil,
		},
		{
			name:     "duplicates reported once",
			oldRefs:  []string{"a.png", "a.png", "b.png"},
			newRefs:  []string{"b.png"},
			expected: []string{"a.png"},
		},
		{
			name:     "comparison is exact string equality",
			oldRefs:  []string{"a.png"},
			newRefs:  []string{"A.png"},
			expected: []string{"a.png"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := StaleRefs(tc.oldRefs, tc.newRefs)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}
