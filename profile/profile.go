// Package profile loads PWM profiles from YAML and turns them into the
// register-level configuration the firmware applies at startup.
package profile

import (
	_ "embed"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"stm32pwm/core"
)

//go:embed profiles.yaml
var rawProfiles []byte

var builtins []Profile

// ErrUnknownProfile is returned when a built-in profile name does not exist
var ErrUnknownProfile = errors.New("unknown profile")

// ErrFrequencyWithPeriod is returned when a profile asks for a frequency
// and also pins the period or divisor
var ErrFrequencyWithPeriod = errors.New("frequency_hz cannot be combined with period or divisor")

func init() {
	if err := yaml.Unmarshal(rawProfiles, &builtins); err != nil {
		panic(err)
	}
}

// Profile describes a waveform. Either Period and Divisor are given
// directly, or FrequencyHz is set and they are solved for. Setting
// FrequencyHz together with Period or Divisor is rejected.
type Profile struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description,omitempty"`
	SourceClockHz uint32   `yaml:"source_clock_hz"`
	FrequencyHz   float64  `yaml:"frequency_hz,omitempty"`
	Period        uint32   `yaml:"period,omitempty"`
	Duty          *float64 `yaml:"duty,omitempty"`
	Divisor       uint32   `yaml:"divisor,omitempty"`
	Speed         string   `yaml:"speed,omitempty"`
}

// Load parses a single YAML profile document and applies defaults
func Load(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, "parsing profile")
	}

	applyDefaults(&p)

	return &p, nil
}

// LoadFile reads and parses a profile from disk
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading profile %s", path)
	}
	p, err := Load(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	if p.Name == "" {
		p.Name = path
	}
	return p, nil
}

// Builtin returns a copy of the named built-in profile
func Builtin(name string) (*Profile, error) {
	for _, p := range builtins {
		if p.Name == strings.ToLower(name) {
			cp := p.clone()
			applyDefaults(&cp)
			return &cp, nil
		}
	}
	return nil, errors.Wrap(ErrUnknownProfile, name)
}

// All returns the built-in profiles in declaration order
func All() []Profile {
	out := make([]Profile, len(builtins))
	for i, p := range builtins {
		out[i] = p.clone()
	}
	return out
}

// clone copies p without sharing the Duty pointer
func (p Profile) clone() Profile {
	if p.Duty != nil {
		duty := *p.Duty
		p.Duty = &duty
	}
	return p
}

// Names returns the names of the built-in profiles
func Names() []string {
	names := make([]string, len(builtins))
	for i, p := range builtins {
		names[i] = p.Name
	}
	return names
}

// applyDefaults fills in missing values from the default 1 Hz blink.
// Period and Divisor are left alone when a frequency is requested, since
// they will be solved for.
func applyDefaults(p *Profile) {
	def := core.DefaultPWMConfig()

	if p.SourceClockHz == 0 {
		p.SourceClockHz = def.SourceClock
	}
	if p.Duty == nil {
		duty := def.Duty
		p.Duty = &duty
	}
	if p.Speed == "" {
		p.Speed = def.Speed.String()
	}
	if p.FrequencyHz == 0 {
		if p.Period == 0 {
			p.Period = def.Period
		}
		if p.Divisor == 0 {
			p.Divisor = def.Divisor
		}
	}
}

// PWMConfig resolves the profile into a validated core.PWMConfig
func (p *Profile) PWMConfig() (core.PWMConfig, error) {
	speed, err := ParseSpeed(p.Speed)
	if err != nil {
		return core.PWMConfig{}, errors.Wrapf(err, "profile %s", p.Name)
	}

	cfg := core.PWMConfig{
		SourceClock: p.SourceClockHz,
		Period:      p.Period,
		Divisor:     p.Divisor,
		Speed:       speed,
	}
	if p.Duty != nil {
		cfg.Duty = *p.Duty
	}

	if p.FrequencyHz != 0 {
		if p.Period != 0 || p.Divisor != 0 {
			return core.PWMConfig{}, errors.Wrapf(ErrFrequencyWithPeriod, "profile %s", p.Name)
		}
		period, divisor, err := Solve(p.SourceClockHz, p.FrequencyHz)
		if err != nil {
			return core.PWMConfig{}, errors.Wrapf(err, "profile %s", p.Name)
		}
		cfg.Period = period
		cfg.Divisor = divisor
	}

	if err := Validate(cfg); err != nil {
		return core.PWMConfig{}, errors.Wrapf(err, "profile %s", p.Name)
	}
	return cfg, nil
}

// ParseSpeed converts "10MHz", "2MHz" or "50MHz" (case-insensitive) into
// the MODE field encoding
func ParseSpeed(s string) (core.OutputSpeed, error) {
	for _, speed := range []core.OutputSpeed{core.Speed10MHz, core.Speed2MHz, core.Speed50MHz} {
		if strings.EqualFold(strings.TrimSpace(s), speed.String()) {
			return speed, nil
		}
	}
	return 0, errors.Errorf("invalid output speed %q (want 10MHz, 2MHz or 50MHz)", s)
}
