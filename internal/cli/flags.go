package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

// monthValue is a pflag.Value that only accepts 1-12. Zero means unset.
type monthValue int

func (m *monthValue) String() string { return strconv.Itoa(int(*m)) }
func (m *monthValue) Type() string   { return "mes" }

func (m *monthValue) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return fmt.Errorf("invalid month %q: expected 1-12", s)
	}
	*m = monthValue(n)
	return nil
}

// portValue is a pflag.Value holding a TCP port as text. Empty means unset.
type portValue string

func (p *portValue) String() string { return string(*p) }
func (p *portValue) Type() string   { return "puerto" }

func (p *portValue) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("invalid port %q: expected 1-65535", s)
	}
	*p = portValue(s)
	return nil
}

func addMonthFlag(fs *pflag.FlagSet, target *monthValue) {
	fs.Var(target, "month", "limitar a un mes (1-12)")
}

func addPortFlag(fs *pflag.FlagSet, target *portValue) {
	fs.VarP(target, "port", "p", "puerto (por defecto PORT o 8080)")
}
