package chaincfg

import (
	"github.com/pkg/errors"

	"github.com/donatenet/donated/infrastructure/logger"
)

var (
	// ErrNotSelected is returned when the active parameters are requested
	// before a network was selected.
	ErrNotSelected = errors.New("no network selected")

	// ErrAlreadySelected is returned when selecting a network after a
	// different one was selected.
	ErrAlreadySelected = errors.New("a different network is already selected")

	// ErrNotUnitTest is returned when modifiable parameters are requested
	// while the active network is not the unit test network.
	ErrNotUnitTest = errors.New("parameters are only modifiable on the unittest network")

	// ErrDuplicateNet describes an error where the parameters for a network
	// could not be registered because another network already uses the
	// same message start bytes.
	ErrDuplicateNet = errors.New("duplicate network message start")
)

// Registry holds the parameters of every supported network and the network
// selected for the process. Select is expected to be called once during
// startup, before the registry is shared between goroutines.
type Registry struct {
	params map[Network]*Params
	magics map[[4]byte]Network
	active *Params
}

// NewRegistry builds and verifies the parameters of every supported network.
func NewRegistry() (*Registry, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "NewRegistry")
	defer onEnd()

	registry := newEmptyRegistry()
	for _, network := range Networks() {
		cfg, err := networkConfig(network)
		if err != nil {
			return nil, err
		}
		params, err := cfg.finalize()
		if err != nil {
			return nil, err
		}
		err = registry.register(params)
		if err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func newEmptyRegistry() *Registry {
	return &Registry{
		params: make(map[Network]*Params),
		magics: make(map[[4]byte]Network),
	}
}

// register adds params to the registry. This errors with ErrDuplicateNet if
// the network or its message start bytes are already registered.
func (r *Registry) register(params *Params) error {
	if _, ok := r.params[params.Net]; ok {
		return errors.Wrapf(ErrDuplicateNet, "%s is already registered", params.Net)
	}
	if other, ok := r.magics[params.MessageStart]; ok {
		return errors.Wrapf(ErrDuplicateNet, "%s and %s share message start %x",
			other, params.Net, params.MessageStart)
	}
	r.params[params.Net] = params
	r.magics[params.MessageStart] = params.Net
	return nil
}

// Params returns the parameters of network, selected or not.
func (r *Registry) Params(network Network) (*Params, error) {
	params, ok := r.params[network]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNetwork, "%s", network)
	}
	return params, nil
}

// Select makes network the active network. Selecting the already active
// network again is a no-op.
func (r *Registry) Select(network Network) error {
	params, err := r.Params(network)
	if err != nil {
		return err
	}
	if r.active != nil && r.active != params {
		return errors.Wrapf(ErrAlreadySelected, "cannot select %s, %s is active",
			network, r.active.Net)
	}
	r.active = params
	log.Infof("Selected the %s network", network)
	return nil
}

// Active returns the parameters of the selected network.
func (r *Registry) Active() (*Params, error) {
	if r.active == nil {
		return nil, ErrNotSelected
	}
	return r.active, nil
}

// ModifiableParams returns a handle that can change the unit test network
// parameters. It is only available while the unit test network is active.
func (r *Registry) ModifiableParams() (*UnitTestParams, error) {
	active, err := r.Active()
	if err != nil {
		return nil, err
	}
	if active.Net != UnitTest {
		return nil, errors.Wrapf(ErrNotUnitTest, "active network is %s", active.Net)
	}
	return &UnitTestParams{params: active}, nil
}

// UnitTestParams changes selected fields of the unit test network
// parameters in place.
type UnitTestParams struct {
	params *Params
}

// Params returns a copy of the parameters being modified. Changes to the
// copy do not reach the registry; use the setters.
func (u *UnitTestParams) Params() *Params {
	params := *u.params
	return &params
}

// SetSubsidyHalvingInterval sets SubsidyHalvingInterval.
func (u *UnitTestParams) SetSubsidyHalvingInterval(interval int32) {
	u.params.SubsidyHalvingInterval = interval
}

// SetEnforceBlockUpgradeMajority sets EnforceBlockUpgradeMajority.
func (u *UnitTestParams) SetEnforceBlockUpgradeMajority(majority int32) {
	u.params.EnforceBlockUpgradeMajority = majority
}

// SetRejectBlockOutdatedMajority sets RejectBlockOutdatedMajority.
func (u *UnitTestParams) SetRejectBlockOutdatedMajority(majority int32) {
	u.params.RejectBlockOutdatedMajority = majority
}

// SetToCheckBlockUpgradeMajority sets ToCheckBlockUpgradeMajority.
func (u *UnitTestParams) SetToCheckBlockUpgradeMajority(majority int32) {
	u.params.ToCheckBlockUpgradeMajority = majority
}

// SetDefaultConsistencyChecks sets DefaultConsistencyChecks.
func (u *UnitTestParams) SetDefaultConsistencyChecks(enabled bool) {
	u.params.DefaultConsistencyChecks = enabled
}

// SetAllowMinDifficultyBlocks sets AllowMinDifficultyBlocks.
func (u *UnitTestParams) SetAllowMinDifficultyBlocks(allowed bool) {
	u.params.AllowMinDifficultyBlocks = allowed
}

// SetSkipProofOfWorkCheck sets SkipProofOfWorkCheck.
func (u *UnitTestParams) SetSkipProofOfWorkCheck(skip bool) {
	u.params.SkipProofOfWorkCheck = skip
}

var defaultRegistry *Registry

// The parameters of the supported networks, built when the package is
// initialized.
var (
	MainNetParams       *Params
	TestNetParams       *Params
	RegressionNetParams *Params
	UnitTestNetParams   *Params
)

// DefaultRegistry returns the registry behind the package level functions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// SelectParams selects the network used by ActiveParams.
func SelectParams(network Network) error {
	return defaultRegistry.Select(network)
}

// ActiveParams returns the parameters of the selected network. It panics
// when no network was selected.
func ActiveParams() *Params {
	params, err := defaultRegistry.Active()
	if err != nil {
		panic(err)
	}
	return params
}

// ModifiableParams returns the unit test network mutator. It panics unless
// the unit test network is selected.
func ModifiableParams() *UnitTestParams {
	modifiable, err := defaultRegistry.ModifiableParams()
	if err != nil {
		panic(err)
	}
	return modifiable
}

// mustNewRegistry performs the same function as NewRegistry except it panics
// if there is an error. This should only be called from package init
// functions.
func mustNewRegistry() *Registry {
	registry, err := NewRegistry()
	if err != nil {
		panic("failed to build network parameters: " + err.Error())
	}
	return registry
}

func init() {
	defaultRegistry = mustNewRegistry()
	MainNetParams = defaultRegistry.params[MainNet]
	TestNetParams = defaultRegistry.params[TestNet]
	RegressionNetParams = defaultRegistry.params[RegTest]
	UnitTestNetParams = defaultRegistry.params[UnitTest]
}
