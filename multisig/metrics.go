package multisig

import "github.com/spacemeshos/go-multisig/metrics"

const subsystem = "client"

var (
	proposals = metrics.NewCounter(
		"proposals",
		subsystem,
		"number of proposals by kind and result",
		[]string{"kind", "result"},
	)
	outcomes = metrics.NewCounter(
		"outcomes",
		subsystem,
		"number of authorization outcomes by kind and status",
		[]string{"kind", "status"},
	)
)
