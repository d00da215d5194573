package trackseed

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess      = 0  // Migration generated
	ExitGeneralError = 1  // Source unreadable, write failure or unclassified error
	ExitUsageError   = 2  // CLI usage error (invalid arguments or flags)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Invalid configuration file or values
)

const (
	// DefaultInputRelPath is the dataset location relative to the executable's directory.
	DefaultInputRelPath = "../../DataSet.xlsx"

	// DefaultOutputRelPath is the migration location relative to the executable's directory.
	DefaultOutputRelPath = "../db/migrations/0001_initial_data.sql"

	// HeaderComment is the first line of every generated migration.
	HeaderComment = "-- Auto-generated from DataSet.xlsx"

	// TableName is the fully qualified target table.
	TableName = "public.adyam_tracking"
)

// Dataset column headers, matched case-sensitively.
const (
	ColumnAWB         = "AWBNO."
	ColumnService     = "SERVICE"
	ColumnSender      = "SENDER"
	ColumnReceiver    = "RECEIVER"
	ColumnShipment    = "SHIPMENT"
	ColumnDestination = "DESTINATION"
	ColumnWeight      = "WEIGHT"
	ColumnContents    = "CONTENTS"
	ColumnStatus      = "STATUS"
	ColumnRemarks     = "REMARKS"
)
