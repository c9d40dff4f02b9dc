package loan

import (
	"banking-engine/internal/domain/bank"
	"banking-engine/internal/infrastructure/monitoring"
)

const (
	PresetStandard = "standard"
	PresetMortgage = "mortgage"
	PresetCar      = "car"
	PresetBusiness = "business"
	PresetCustom   = "custom"
)

// Director drives a fresh builder per preset so that nothing set by one
// preset carries over into the next agreement.
type Director struct {
	newBuilder func() *Builder
}

func NewDirector() *Director {
	return &Director{newBuilder: NewBuilder}
}

func (d *Director) SetBuilder(factory func() *Builder) {
	if factory == nil {
		factory = NewBuilder
	}
	d.newBuilder = factory
}

func (d *Director) ConstructStandardLoan(client *bank.Client, amount float64) (*Agreement, error) {
	return d.construct(PresetStandard,
		WithClient(client),
		WithAmount(amount),
		WithInterestRate(7.5),
		WithTermMonths(60),
		WithPurpose("Personal loan"),
		WithInsurance(false),
	)
}

func (d *Director) ConstructMortgageLoan(client *bank.Client, amount float64) (*Agreement, error) {
	return d.construct(PresetMortgage,
		WithClient(client),
		WithAmount(amount),
		WithInterestRate(6.8),
		WithTermMonths(360),
		WithPurpose("Real Estate Purchase"),
		WithInsurance(true),
	)
}

func (d *Director) ConstructCarLoan(client *bank.Client, amount float64) (*Agreement, error) {
	return d.construct(PresetCar,
		WithClient(client),
		WithAmount(amount),
		WithInterestRate(8.5),
		WithTermMonths(60),
		WithPurpose("Vehicle Purchase"),
		WithInsurance(true),
	)
}

func (d *Director) ConstructBusinessLoan(client *bank.Client, amount float64) (*Agreement, error) {
	return d.construct(PresetBusiness,
		WithClient(client),
		WithAmount(amount),
		WithInterestRate(9.0),
		WithTermMonths(120),
		WithPurpose("Business Development"),
		WithInsurance(false),
	)
}

func (d *Director) ConstructCustomLoan(client *bank.Client, amount, rate float64, termMonths int, purpose string) (*Agreement, error) {
	return d.construct(PresetCustom,
		WithClient(client),
		WithAmount(amount),
		WithInterestRate(rate),
		WithTermMonths(termMonths),
		WithPurpose(purpose),
	)
}

func (d *Director) construct(preset string, opts ...Option) (*Agreement, error) {
	b := d.newBuilder()
	if err := b.Apply(opts...); err != nil {
		return nil, err
	}
	agreement, err := b.Build()
	if err != nil {
		return nil, err
	}
	monitoring.RecordLoanBuilt(preset)
	return agreement, nil
}
