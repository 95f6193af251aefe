package core

// RegisterWrite records one modification of a simulated register
type RegisterWrite struct {
	Name   string
	Before uint32
	After  uint32
}

// WriteLog is the ordered list of writes made against a simulated
// register file
type WriteLog struct {
	writes []RegisterWrite
}

// Len returns the number of recorded writes
func (l *WriteLog) Len() int {
	return len(l.writes)
}

// All returns a copy of the recorded writes in order
func (l *WriteLog) All() []RegisterWrite {
	out := make([]RegisterWrite, len(l.writes))
	copy(out, l.writes)
	return out
}

// Last returns the most recent write; ok is false when nothing was written
func (l *WriteLog) Last() (RegisterWrite, bool) {
	if len(l.writes) == 0 {
		return RegisterWrite{}, false
	}
	return l.writes[len(l.writes)-1], true
}

// For returns the writes made to the named register, in order
func (l *WriteLog) For(name string) []RegisterWrite {
	var out []RegisterWrite
	for _, w := range l.writes {
		if w.Name == name {
			out = append(out, w)
		}
	}
	return out
}

// Reset discards all recorded writes
func (l *WriteLog) Reset() {
	l.writes = l.writes[:0]
}

func (l *WriteLog) record(name string, before, after uint32) {
	l.writes = append(l.writes, RegisterWrite{Name: name, Before: before, After: after})
}

// SimRegister is an in-memory Register32 that logs every write
type SimRegister struct {
	name  string
	value uint32
	log   *WriteLog
}

// NewSimRegister creates a simulated register holding its reset value.
// log may be nil.
func NewSimRegister(name string, reset uint32, log *WriteLog) *SimRegister {
	return &SimRegister{name: name, value: reset, log: log}
}

// Name returns the register name used in the write log
func (r *SimRegister) Name() string {
	return r.name
}

func (r *SimRegister) Get() uint32 {
	return r.value
}

func (r *SimRegister) Set(value uint32) {
	r.write(value)
}

func (r *SimRegister) SetBits(value uint32) {
	r.write(r.value | value)
}

func (r *SimRegister) ClearBits(value uint32) {
	r.write(r.value &^ value)
}

func (r *SimRegister) HasBits(value uint32) bool {
	return r.value&value != 0
}

func (r *SimRegister) write(value uint32) {
	before := r.value
	r.value = value
	if r.log != nil {
		r.log.record(r.name, before, value)
	}
}

// NewSimRegisterFile returns a register file of simulated registers at
// their power-on reset values, and the log their writes go to
func NewSimRegisterFile() (*RegisterFile, *WriteLog) {
	log := &WriteLog{}
	sim := func(name string, reset uint32) *SimRegister {
		return NewSimRegister(name, reset, log)
	}

	rf := &RegisterFile{
		RCC: RCCRegisters{
			APB2ENR: sim("RCC_APB2ENR", 0),
			APB1ENR: sim("RCC_APB1ENR", 0),
		},
		GPIOA: GPIORegisters{
			CRL: sim("GPIOA_CRL", resetGPIOCRL),
		},
		TIM2: TimerRegisters{
			CR1:   sim("TIM2_CR1", 0),
			CCMR1: sim("TIM2_CCMR1", 0),
			CCER:  sim("TIM2_CCER", 0),
			PSC:   sim("TIM2_PSC", 0),
			ARR:   sim("TIM2_ARR", resetTIMARR),
			CCR1:  sim("TIM2_CCR1", 0),
		},
	}
	return rf, log
}
