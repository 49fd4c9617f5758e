package chaincfg

import (
	"math"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

func testHash(b byte) *chainhash.Hash {
	var hash chainhash.Hash
	hash[0] = b
	return &hash
}

func TestNewCheckpointTableErrors(t *testing.T) {
	tests := []struct {
		name        string
		checkpoints []Checkpoint
		txsPerDay   float64
		err         error
	}{
		{"empty", nil, 0, ErrNoCheckpoints},
		{"negative height", []Checkpoint{{-1, testHash(1)}}, 0, ErrCheckpointOrder},
		{"duplicate height", []Checkpoint{{0, testHash(1)}, {5, testHash(2)}, {5, testHash(3)}}, 0, ErrCheckpointOrder},
		{"decreasing height", []Checkpoint{{0, testHash(1)}, {10, testHash(2)}, {7, testHash(3)}}, 0, ErrCheckpointOrder},
		{"nil hash", []Checkpoint{{0, testHash(1)}, {1, nil}}, 0, ErrInvalidCheckpoint},
		{"negative rate", []Checkpoint{{0, testHash(1)}, {10, testHash(2)}}, -1e12, ErrInvalidCheckpoint},
		{"NaN rate", []Checkpoint{{0, testHash(1)}}, math.NaN(), ErrInvalidCheckpoint},
	}

	for _, test := range tests {
		_, err := NewCheckpointTable(test.checkpoints, time.Unix(0, 0), 0, test.txsPerDay, 100)
		if !errors.Is(err, test.err) {
			t.Errorf("%s: got error %v, want %v", test.name, err, test.err)
		}
	}
}

func TestCheckpointTableVerify(t *testing.T) {
	checkpoints := []Checkpoint{{0, testHash(1)}, {10, testHash(2)}, {20, testHash(3)}}
	table, err := NewCheckpointTable(checkpoints, time.Unix(0, 0), 0, 0, 100)
	if err != nil {
		t.Fatalf("NewCheckpointTable: %v", err)
	}

	// The table must not share the caller's hashes.
	checkpoints[1].Hash[0] = 0xff

	tests := []struct {
		height int32
		hash   *chainhash.Hash
		want   CheckpointResult
	}{
		{0, testHash(1), CheckpointMatch},
		{10, testHash(2), CheckpointMatch},
		{10, testHash(0xff), CheckpointMismatch},
		{20, nil, CheckpointMismatch},
		{5, testHash(1), NoCheckpoint},
		{21, testHash(3), NoCheckpoint},
	}
	for _, test := range tests {
		if got := table.Verify(test.height, test.hash); got != test.want {
			t.Errorf("Verify(%d, %v): got %s, want %s", test.height, test.hash, got, test.want)
		}
	}

	if table.MaxReorgDepth() != 100 {
		t.Errorf("MaxReorgDepth: got %d, want 100", table.MaxReorgDepth())
	}
	if table.TotalBlocksEstimate() != 20 {
		t.Errorf("TotalBlocksEstimate: got %d, want 20", table.TotalBlocksEstimate())
	}
	if hash, ok := table.Lookup(20); !ok || !hash.IsEqual(testHash(3)) {
		t.Errorf("Lookup(20): got %v, %t", hash, ok)
	}
	if _, ok := table.Lookup(19); ok {
		t.Errorf("Lookup(19): unexpected checkpoint")
	}

	copied := table.Checkpoints()
	copied[0].Hash[0] = 0xee
	if table.Verify(0, testHash(1)) != CheckpointMatch {
		t.Errorf("Checkpoints returned the table's own hashes")
	}
}

func TestCheckpointResultString(t *testing.T) {
	tests := []struct {
		result CheckpointResult
		want   string
	}{
		{NoCheckpoint, "NoCheckpoint"},
		{CheckpointMatch, "CheckpointMatch"},
		{CheckpointMismatch, "CheckpointMismatch"},
		{CheckpointResult(9), "Unknown CheckpointResult"},
	}
	for _, test := range tests {
		if got := test.result.String(); got != test.want {
			t.Errorf("String: got %s, want %s", got, test.want)
		}
	}
}

func TestLastCheckpoint(t *testing.T) {
	checkpoints := []Checkpoint{{0, testHash(1)}, {10, testHash(2)}, {20, testHash(3)}}
	table, err := NewCheckpointTable(checkpoints, time.Unix(0, 0), 0, 0, 100)
	if err != nil {
		t.Fatalf("NewCheckpointTable: %v", err)
	}

	known := map[chainhash.Hash]bool{*testHash(1): true, *testHash(2): true}
	have := func(hash *chainhash.Hash) bool { return known[*hash] }
	last := table.LastCheckpoint(have)
	if last == nil || last.Height != 10 || !last.Hash.IsEqual(testHash(2)) {
		t.Errorf("LastCheckpoint: got %v, want height 10", last)
	}

	if last := table.LastCheckpoint(func(*chainhash.Hash) bool { return false }); last != nil {
		t.Errorf("LastCheckpoint: got %v for an empty chain", last)
	}
}

func TestEstimateHeightFromTime(t *testing.T) {
	lastTime := time.Unix(1549617274, 0)
	checkpoints := []Checkpoint{{0, testHash(1)}, {100, testHash(2)}}
	table, err := NewCheckpointTable(checkpoints, lastTime, 200, 1000, 100)
	if err != nil {
		t.Fatalf("NewCheckpointTable: %v", err)
	}

	tests := []struct {
		name string
		tm   time.Time
		want int32
	}{
		{"before last checkpoint", lastTime.Add(-time.Hour), 100},
		{"at last checkpoint", lastTime, 100},
		{"one day later", lastTime.Add(24 * time.Hour), 600},
		{"two days later", lastTime.Add(48 * time.Hour), 1100},
	}
	for _, test := range tests {
		if got := table.EstimateHeightFromTime(test.tm); got != test.want {
			t.Errorf("%s: got %d, want %d", test.name, got, test.want)
		}
	}

	busy, err := NewCheckpointTable(checkpoints, lastTime, 200, 1e9, 100)
	if err != nil {
		t.Fatalf("NewCheckpointTable: %v", err)
	}
	if got := busy.EstimateHeightFromTime(lastTime.Add(10 * 24 * time.Hour)); got != math.MaxInt32 {
		t.Errorf("overflowing estimate: got %d, want %d", got, int32(math.MaxInt32))
	}

	empty, err := NewCheckpointTable(checkpoints, lastTime, 0, 1000, 100)
	if err != nil {
		t.Fatalf("NewCheckpointTable: %v", err)
	}
	if got := empty.EstimateHeightFromTime(lastTime.Add(48 * time.Hour)); got != 100 {
		t.Errorf("without transaction statistics: got %d, want 100", got)
	}

	idle, err := NewCheckpointTable(checkpoints, lastTime, 10, 0, 100)
	if err != nil {
		t.Fatalf("NewCheckpointTable: %v", err)
	}
	if got := idle.EstimateHeightFromTime(lastTime.Add(24 * time.Hour)); got != 100 {
		t.Errorf("without new transactions: got %d, want 100", got)
	}
}

func TestGuessVerificationProgress(t *testing.T) {
	lastTime := time.Unix(1549617274, 0)
	now := lastTime.Add(10 * 24 * time.Hour)
	table, err := NewCheckpointTable([]Checkpoint{{0, testHash(1)}}, lastTime, 1000, 100, 100)
	if err != nil {
		t.Fatalf("NewCheckpointTable: %v", err)
	}

	tests := []struct {
		name      string
		chainTx   uint64
		tipTime   time.Time
		sigchecks bool
		want      float64
	}{
		{"before checkpoint", 500, lastTime, false, 500.0 / 2000.0},
		{"before checkpoint with sigchecks", 500, lastTime, true, 500.0 / 6000.0},
		{"synced tip", 1500, now, true, 1},
		{"after checkpoint", 1500, now.Add(-5 * 24 * time.Hour), false, 1500.0 / 2000.0},
		{"tip in the future", 1500, now.Add(time.Hour), false, 1},
		{"nothing verified", 0, lastTime, false, 0},
	}
	for _, test := range tests {
		got := table.GuessVerificationProgress(test.chainTx, test.tipTime, now, test.sigchecks)
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("%s: got %f, want %f", test.name, got, test.want)
		}
	}

	empty, err := NewCheckpointTable([]Checkpoint{{0, testHash(1)}}, lastTime, 0, 100, 100)
	if err != nil {
		t.Fatalf("NewCheckpointTable: %v", err)
	}
	if got := empty.GuessVerificationProgress(0, lastTime, lastTime, true); got != 0 {
		t.Errorf("empty chain: got %f, want 0", got)
	}
}
