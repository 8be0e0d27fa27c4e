package process

// Notes:
// - Only PIDs that cannot belong to a live process are used. Real Chrome
//   teardown is exercised by the live view integration tests.

import "testing"

func TestKillTree_IgnoresNonPositive(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1} {
		if err := KillTree(pid); err != nil {
			t.Errorf("KillTree(%d) = %v, want nil", pid, err)
		}
	}
}
