package core

import (
	"math"
	"testing"
)

func configureDefault(t *testing.T) (*RegisterFile, *WriteLog, map[string]uint32) {
	t.Helper()
	rf, log := NewSimRegisterFile()
	before := rf.Snapshot()
	ConfigurePWM(rf, DefaultPWMConfig())
	return rf, log, before
}

func TestConfigurePWMClockEnables(t *testing.T) {
	rf, _ := NewSimRegisterFile()

	// Unrelated peripherals already clocked
	rf.RCC.APB1ENR.Set(0x00020000) // USART2EN
	rf.RCC.APB2ENR.Set(0x00000001) // AFIOEN

	ConfigurePWM(rf, DefaultPWMConfig())

	if got, want := rf.RCC.APB1ENR.Get(), uint32(0x00020001); got != want {
		t.Errorf("APB1ENR: expected %#x, got %#x", want, got)
	}
	if got, want := rf.RCC.APB2ENR.Get(), uint32(0x00000005); got != want {
		t.Errorf("APB2ENR: expected %#x, got %#x", want, got)
	}
}

func TestConfigurePWMPinMode(t *testing.T) {
	rf, _, before := configureDefault(t)

	crl := rf.GPIOA.CRL.Get()
	if nibble := crl & 0xF; nibble != 0xA {
		t.Errorf("PA0 CNF/MODE: expected 0xA, got %#x", nibble)
	}
	if crl&^0xF != before["GPIOA_CRL"]&^0xF {
		t.Errorf("other pins changed: before %#x, after %#x", before["GPIOA_CRL"], crl)
	}
	if crl != 0x4444444A {
		t.Errorf("GPIOA_CRL: expected 0x4444444A, got %#x", crl)
	}
}

func TestConfigurePWMPinSpeeds(t *testing.T) {
	testCases := []struct {
		speed  OutputSpeed
		nibble uint32
	}{
		{Speed10MHz, 0x9},
		{Speed2MHz, 0xA},
		{Speed50MHz, 0xB},
		{OutputSpeed(0), 0xA}, // input encoding falls back to 2MHz
	}

	for _, tc := range testCases {
		rf, _ := NewSimRegisterFile()
		// Dirty the pin with a general-purpose open-drain setting first
		rf.GPIOA.CRL.Set(0x44444447)

		cfg := DefaultPWMConfig()
		cfg.Speed = tc.speed
		ConfigurePWM(rf, cfg)

		if got := rf.GPIOA.CRL.Get(); got != 0x44444440|tc.nibble {
			t.Errorf("speed %s: expected CRL %#x, got %#x", tc.speed, 0x44444440|tc.nibble, got)
		}
	}
}

func TestConfigurePWMTimerRegisters(t *testing.T) {
	rf, _, _ := configureDefault(t)

	if got := rf.TIM2.ARR.Get(); got != 8000 {
		t.Errorf("ARR: expected 8000, got %d", got)
	}
	if got := rf.TIM2.CCR1.Get(); got != 4000 {
		t.Errorf("CCR1: expected 4000, got %d", got)
	}
	if got := rf.TIM2.PSC.Get(); got != 999 {
		t.Errorf("PSC: expected 999, got %d", got)
	}
	if !rf.TIM2.CCER.HasBits(TIM_CCER_CC1E) {
		t.Error("CC1E not set")
	}
	if !rf.TIM2.CR1.HasBits(TIM_CR1_CEN) {
		t.Error("CEN not set")
	}
}

func TestConfigurePWMOutputCompareMode(t *testing.T) {
	rf, _ := NewSimRegisterFile()

	// OC1PE and a stale OC1M = 0b001, plus channel 2 settings
	const other = 0x0800 | 0x0008
	rf.TIM2.CCMR1.Set(other | 0x0010)

	ConfigurePWM(rf, DefaultPWMConfig())

	ccmr1 := rf.TIM2.CCMR1.Get()
	if oc1m := (ccmr1 & TIM_CCMR1_OC1M_Msk) >> TIM_CCMR1_OC1M_Pos; oc1m != 0x6 {
		t.Errorf("OC1M: expected 0b110, got %03b", oc1m)
	}
	if ccmr1&^TIM_CCMR1_OC1M_Msk != other {
		t.Errorf("other CCMR1 bits changed: expected %#x, got %#x", other, ccmr1&^TIM_CCMR1_OC1M_Msk)
	}
}

func TestConfigurePWMCounterEnableIsLast(t *testing.T) {
	_, log, _ := configureDefault(t)

	last, ok := log.Last()
	if !ok {
		t.Fatal("no writes recorded")
	}
	if last.Name != "TIM2_CR1" || last.After&TIM_CR1_CEN == 0 {
		t.Errorf("expected final write to set TIM2_CR1.CEN, got %s %#x", last.Name, last.After)
	}

	// CR1 is only written once, and nothing before it enabled the counter
	if writes := log.For("TIM2_CR1"); len(writes) != 1 {
		t.Errorf("expected 1 write to TIM2_CR1, got %d", len(writes))
	}
}

func TestConfigurePWMWriteOrder(t *testing.T) {
	_, log, _ := configureDefault(t)

	expected := []string{
		"RCC_APB1ENR",
		"RCC_APB2ENR",
		"GPIOA_CRL", // clear
		"GPIOA_CRL", // set
		"TIM2_ARR",
		"TIM2_CCR1",
		"TIM2_CCMR1", // clear
		"TIM2_CCMR1", // set
		"TIM2_CCER",
		"TIM2_PSC",
		"TIM2_CR1",
	}

	writes := log.All()
	if len(writes) != len(expected) {
		t.Fatalf("expected %d writes, got %d", len(expected), len(writes))
	}
	for i, w := range writes {
		if w.Name != expected[i] {
			t.Errorf("write %d: expected %s, got %s", i, expected[i], w.Name)
		}
	}

	// Clocks must be on before any peripheral register is touched
	for i := 2; i < len(writes); i++ {
		if writes[i].Name == "RCC_APB1ENR" || writes[i].Name == "RCC_APB2ENR" {
			t.Errorf("clock enable written after peripheral configuration at index %d", i)
		}
	}
}

func TestPWMConfigDerivedValues(t *testing.T) {
	testCases := []struct {
		name      string
		cfg       PWMConfig
		compare   uint32
		prescaler uint32
		freq      float64
	}{
		{"default", DefaultPWMConfig(), 4000, 999, 1},
		{"quarter duty", PWMConfig{SourceClock: 8000000, Period: 8000, Duty: 0.25, Divisor: 1000}, 2000, 999, 1},
		{"fast", PWMConfig{SourceClock: 8000000, Period: 1000, Duty: 0.5, Divisor: 8}, 500, 7, 1000},
		{"rounded", PWMConfig{SourceClock: 72000000, Period: 3, Duty: 0.5, Divisor: 1}, 2, 0, 24000000},
		{"undivided", PWMConfig{SourceClock: 8000000, Period: 8000, Duty: 1.5, Divisor: 0}, 8000, 0, 1000},
		{"off", PWMConfig{SourceClock: 8000000, Period: 8000, Duty: -1, Divisor: 1000}, 0, 999, 1},
	}

	for _, tc := range testCases {
		if got := tc.cfg.Compare(); got != tc.compare {
			t.Errorf("%s: Compare expected %d, got %d", tc.name, tc.compare, got)
		}
		if got := tc.cfg.Prescaler(); got != tc.prescaler {
			t.Errorf("%s: Prescaler expected %d, got %d", tc.name, tc.prescaler, got)
		}
		if got := tc.cfg.OutputFrequency(); math.Abs(got-tc.freq) > 1e-9 {
			t.Errorf("%s: OutputFrequency expected %v, got %v", tc.name, tc.freq, got)
		}
	}
}

func TestDefaultWaveform(t *testing.T) {
	rf, _, _ := configureDefault(t)

	// Reconstruct the waveform from what the hardware was told
	cfg := DefaultPWMConfig()
	ticks := float64(rf.TIM2.ARR.Get()) * float64(rf.TIM2.PSC.Get()+1)
	freq := float64(cfg.SourceClock) / ticks
	if freq != 1 {
		t.Errorf("expected 1 Hz output, got %v", freq)
	}

	high := float64(rf.TIM2.CCR1.Get()) / float64(rf.TIM2.ARR.Get())
	if high != 0.5 {
		t.Errorf("expected 50%% high time, got %v", high*100)
	}
	if cfg.DutyPercent() != 50 {
		t.Errorf("DutyPercent: expected 50, got %v", cfg.DutyPercent())
	}
	t.Logf("TIM2: ARR=%d CCR1=%d PSC=%d -> %.3f Hz", rf.TIM2.ARR.Get(), rf.TIM2.CCR1.Get(), rf.TIM2.PSC.Get(), freq)
}

func TestZeroPeriodDerivedValues(t *testing.T) {
	cfg := PWMConfig{SourceClock: 8000000}
	if cfg.OutputFrequency() != 0 {
		t.Errorf("expected 0 Hz for zero period, got %v", cfg.OutputFrequency())
	}
	if cfg.DutyPercent() != 0 {
		t.Errorf("expected 0%% duty for zero period, got %v", cfg.DutyPercent())
	}
}

func TestFirmwareConfigBlinksAtOneHertz(t *testing.T) {
	cfg := FirmwarePWMConfig()

	if cfg.SourceClock != 72000000 {
		t.Errorf("expected 72 MHz timer clock, got %d", cfg.SourceClock)
	}
	if got := cfg.OutputFrequency(); got != 1 {
		t.Errorf("expected 1 Hz on the runtime clock, got %v", got)
	}
	if got := cfg.DutyPercent(); got != 50 {
		t.Errorf("expected 50%% duty, got %v", got)
	}

	rf, _ := NewSimRegisterFile()
	ConfigurePWM(rf, cfg)
	if got := rf.TIM2.PSC.Get(); got != 8999 {
		t.Errorf("PSC: expected 8999, got %d", got)
	}
	if got := rf.TIM2.ARR.Get(); got != 8000 {
		t.Errorf("ARR: expected 8000, got %d", got)
	}
	if rf.TIM2.PSC.Get() > TIM_MaxCount {
		t.Errorf("PSC %d does not fit 16 bits", rf.TIM2.PSC.Get())
	}
}

func TestCompareNaNDuty(t *testing.T) {
	cfg := DefaultPWMConfig()
	cfg.Duty = math.NaN()
	if got := cfg.Compare(); got != 0 {
		t.Errorf("expected NaN duty to give compare 0, got %d", got)
	}
}
