// README: Common money value object used across modules.
package types

import "fmt"

// Money carries an amount in minor units (cents) so fare math stays exact.
type Money struct {
	Cents    int64
	Currency string
}

// Amount renders the value as a fixed two-decimal string, e.g. "247.12".
func (m Money) Amount() string {
	return fmt.Sprintf("%d.%02d", m.Cents/100, m.Cents%100)
}
