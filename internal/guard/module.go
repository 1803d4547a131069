package guard

import "go.uber.org/fx"

// Module provides the session guard to the fx container.
var Module = fx.Provide(New)
