package ports

import "time"

// Clock supplies "now" to the application layer. Domain methods never read the
// time themselves.
type Clock interface {
	Now() time.Time
}
