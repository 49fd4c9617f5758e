package chaincfg

import (
	"math"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

// sigcheckVerificationFactor is how much more expensive a block with
// signature checks is to verify than one below the last checkpoint.
const sigcheckVerificationFactor = 5.0

// Checkpoint identifies a known good point in the block chain. Using
// checkpoints allows a few optimizations for old blocks during initial
// download and also prevents forks from old blocks.
type Checkpoint struct {
	Height int32
	Hash   *chainhash.Hash
}

// CheckpointResult is the outcome of checking a block against a checkpoint
// table.
type CheckpointResult int

// The possible results of CheckpointTable.Verify.
const (
	// NoCheckpoint means there is no checkpoint at the given height.
	NoCheckpoint CheckpointResult = iota

	// CheckpointMatch means the block hash equals the checkpoint.
	CheckpointMatch

	// CheckpointMismatch means a checkpoint exists at the height and the
	// block hash is different.
	CheckpointMismatch
)

var checkpointResultStrings = map[CheckpointResult]string{
	NoCheckpoint:       "NoCheckpoint",
	CheckpointMatch:    "CheckpointMatch",
	CheckpointMismatch: "CheckpointMismatch",
}

func (r CheckpointResult) String() string {
	if s, ok := checkpointResultStrings[r]; ok {
		return s
	}
	return "Unknown CheckpointResult"
}

var (
	// ErrNoCheckpoints is returned when a checkpoint table is built from
	// an empty list.
	ErrNoCheckpoints = errors.New("no checkpoints")

	// ErrCheckpointOrder is returned when checkpoint heights are negative
	// or not strictly increasing.
	ErrCheckpointOrder = errors.New("checkpoints not in strictly increasing height order")

	// ErrInvalidCheckpoint is returned for a checkpoint without a hash or
	// a negative transaction rate.
	ErrInvalidCheckpoint = errors.New("invalid checkpoint")
)

// CheckpointTable is an immutable, height ordered set of checkpoints along
// with the statistics used to estimate synchronization progress.
type CheckpointTable struct {
	checkpoints        []Checkpoint
	byHeight           map[int32]chainhash.Hash
	lastCheckpointTime time.Time
	txsLastCheckpoint  uint64
	txsPerDay          float64
	maxReorgDepth      int32
}

// NewCheckpointTable copies checkpoints into a new CheckpointTable.
// lastCheckpointTime and txsLastCheckpoint describe the block at the last
// checkpoint, txsPerDay the expected transaction rate after it. They are
// advisory and only feed the estimators.
func NewCheckpointTable(checkpoints []Checkpoint, lastCheckpointTime time.Time,
	txsLastCheckpoint uint64, txsPerDay float64, maxReorgDepth int32) (*CheckpointTable, error) {

	if len(checkpoints) == 0 {
		return nil, ErrNoCheckpoints
	}
	if txsPerDay < 0 || math.IsNaN(txsPerDay) {
		return nil, errors.Wrapf(ErrInvalidCheckpoint, "transactions per day is %f", txsPerDay)
	}

	table := &CheckpointTable{
		checkpoints:        make([]Checkpoint, len(checkpoints)),
		byHeight:           make(map[int32]chainhash.Hash, len(checkpoints)),
		lastCheckpointTime: lastCheckpointTime,
		txsLastCheckpoint:  txsLastCheckpoint,
		txsPerDay:          txsPerDay,
		maxReorgDepth:      maxReorgDepth,
	}
	previousHeight := int32(-1)
	for i, checkpoint := range checkpoints {
		if checkpoint.Hash == nil {
			return nil, errors.Wrapf(ErrInvalidCheckpoint, "checkpoint at height %d has no hash",
				checkpoint.Height)
		}
		if checkpoint.Height <= previousHeight {
			return nil, errors.Wrapf(ErrCheckpointOrder, "height %d follows height %d",
				checkpoint.Height, previousHeight)
		}
		previousHeight = checkpoint.Height

		hash := *checkpoint.Hash
		table.checkpoints[i] = Checkpoint{Height: checkpoint.Height, Hash: &hash}
		table.byHeight[checkpoint.Height] = hash
	}
	return table, nil
}

// Verify checks hash against the checkpoint at height, if any.
func (t *CheckpointTable) Verify(height int32, hash *chainhash.Hash) CheckpointResult {
	checkpointHash, ok := t.byHeight[height]
	if !ok {
		return NoCheckpoint
	}
	if hash != nil && checkpointHash.IsEqual(hash) {
		return CheckpointMatch
	}
	return CheckpointMismatch
}

// Lookup returns the checkpoint hash at height.
func (t *CheckpointTable) Lookup(height int32) (*chainhash.Hash, bool) {
	hash, ok := t.byHeight[height]
	if !ok {
		return nil, false
	}
	return &hash, true
}

// Checkpoints returns a copy of the checkpoints in height order.
func (t *CheckpointTable) Checkpoints() []Checkpoint {
	checkpoints := make([]Checkpoint, len(t.checkpoints))
	for i, checkpoint := range t.checkpoints {
		hash := *checkpoint.Hash
		checkpoints[i] = Checkpoint{Height: checkpoint.Height, Hash: &hash}
	}
	return checkpoints
}

// MaxReorgDepth returns the deepest reorganization the network accepts.
func (t *CheckpointTable) MaxReorgDepth() int32 {
	return t.maxReorgDepth
}

// LastCheckpointTime returns the timestamp of the block at the last checkpoint.
func (t *CheckpointTable) LastCheckpointTime() time.Time {
	return t.lastCheckpointTime
}

// TransactionsLastCheckpoint returns the number of transactions in the chain
// up to and including the last checkpoint.
func (t *CheckpointTable) TransactionsLastCheckpoint() uint64 {
	return t.txsLastCheckpoint
}

// TransactionsPerDay returns the estimated transaction rate after the last
// checkpoint.
func (t *CheckpointTable) TransactionsPerDay() float64 {
	return t.txsPerDay
}

// TotalBlocksEstimate returns the height of the last checkpoint.
func (t *CheckpointTable) TotalBlocksEstimate() int32 {
	return t.checkpoints[len(t.checkpoints)-1].Height
}

// LastCheckpoint returns the highest checkpoint for which have reports the
// block as known, or nil when none is.
func (t *CheckpointTable) LastCheckpoint(have func(hash *chainhash.Hash) bool) *Checkpoint {
	for i := len(t.checkpoints) - 1; i >= 0; i-- {
		hash := *t.checkpoints[i].Hash
		if have(&hash) {
			return &Checkpoint{Height: t.checkpoints[i].Height, Hash: &hash}
		}
	}
	return nil
}

// EstimateHeightFromTime estimates the chain height at time tm by
// extrapolating the transaction rate past the last checkpoint and converting
// transactions to blocks at the average ratio seen up to the last checkpoint.
// Times before the last checkpoint yield the last checkpoint height.
func (t *CheckpointTable) EstimateHeightFromTime(tm time.Time) int32 {
	lastHeight := t.TotalBlocksEstimate()
	if !tm.After(t.lastCheckpointTime) || t.txsLastCheckpoint == 0 {
		return lastHeight
	}

	days := tm.Sub(t.lastCheckpointTime).Hours() / 24
	blocksPerTx := float64(lastHeight) / float64(t.txsLastCheckpoint)
	estimate := float64(lastHeight) + days*t.txsPerDay*blocksPerTx
	if estimate > math.MaxInt32 {
		return math.MaxInt32
	}
	if estimate < float64(lastHeight) {
		return lastHeight
	}
	return int32(estimate)
}

// GuessVerificationProgress estimates the fraction of the verification work
// done once the chain contains chainTx transactions and its tip was mined at
// tipTime. Transactions past the last checkpoint cost
// sigcheckVerificationFactor times more when sigchecks is set.
func (t *CheckpointTable) GuessVerificationProgress(chainTx uint64, tipTime, now time.Time,
	sigchecks bool) float64 {

	factor := 1.0
	if sigchecks {
		factor = sigcheckVerificationFactor
	}
	daysSince := func(since time.Time) float64 {
		days := now.Sub(since).Hours() / 24
		if days < 0 {
			return 0
		}
		return days
	}

	var workBefore, workAfter float64
	if chainTx <= t.txsLastCheckpoint {
		cheapAfter := float64(t.txsLastCheckpoint - chainTx)
		expensiveAfter := daysSince(t.lastCheckpointTime) * t.txsPerDay
		workBefore = float64(chainTx)
		workAfter = cheapAfter + expensiveAfter*factor
	} else {
		expensiveBefore := float64(chainTx - t.txsLastCheckpoint)
		expensiveAfter := daysSince(tipTime) * t.txsPerDay
		workBefore = float64(t.txsLastCheckpoint) + expensiveBefore*factor
		workAfter = expensiveAfter * factor
	}

	if workBefore+workAfter == 0 {
		return 0
	}
	return workBefore / (workBefore + workAfter)
}
