package model

import "testing"

func TestNumSubsAndSubSize(t *testing.T) {
	cases := []struct {
		size, cap int
		wantN     int
		wantSizes []int
	}{
		{10, 4, 3, []int{4, 4, 2}},
		{8, 4, 2, []int{4, 4}},
		{1, 100, 1, []int{1}},
		{100, 100, 1, []int{100}},
		{101, 100, 2, []int{100, 1}},
	}
	for _, tc := range cases {
		n := NumSubs(tc.size, tc.cap)
		if n != tc.wantN {
			t.Errorf("NumSubs(%d,%d) = %d, want %d", tc.size, tc.cap, n, tc.wantN)
		}
		sum := 0
		for i := 0; i < n; i++ {
			s := SubSize(tc.size, tc.cap, i)
			if s != tc.wantSizes[i] {
				t.Errorf("SubSize(%d,%d,%d) = %d, want %d", tc.size, tc.cap, i, s, tc.wantSizes[i])
			}
			sum += s
		}
		if sum != tc.size {
			t.Errorf("sizes for size=%d cap=%d sum to %d, want %d", tc.size, tc.cap, sum, tc.size)
		}
	}
}

func TestSubNaming(t *testing.T) {
	if got := SubName("P", 2); got != "P_sub2" {
		t.Errorf("SubName = %q, want P_sub2", got)
	}
	if got := SubPairName("P_wu", 1, 3); got != "P_wu_sub1_3" {
		t.Errorf("SubPairName = %q, want P_wu_sub1_3", got)
	}
}
