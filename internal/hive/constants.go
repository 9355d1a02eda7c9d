package hive

// Starting values for a fresh hive
const (
	InitialHoney      = 0
	InitialPollen     = 10
	InitialPropolis   = 5
	InitialBeeCoins   = 100
	InitialHiveLevel  = 1
	InitialWorkerBees = 5

	InitialHoneyPrice    = 10
	InitialPollenPrice   = 5
	InitialPropolisPrice = 15
)

// Production coefficients, per second
const (
	BeeHoneyPerSecond     = 0.0025
	HiveHoneyPerSecond    = 0.0015
	BeePollenPerSecond    = 0.001
	HivePollenPerSecond   = 0.0005
	HivePropolisPerSecond = 0.0002
)

// Bonus collection
const (
	BonusSeconds            = 10
	PollenChanceOnCollect   = 0.1
	PropolisChanceOnCollect = 0.05
)

// Costs
const (
	BaseUpgradeCost       = 50
	UpgradeCostMultiplier = 1.2
	WorkerBeeCost         = 20
)

// Capacity
const (
	BaseMaxWorkerBees     = 100
	MaxWorkerBeesPerLevel = 100
	// MaxHiveLevel is far beyond what upgrade costs allow
	MaxHiveLevel = 1000
)

// Queen recurrence
const (
	QueenInitiallyPresent     = true
	QueenBirthIntervalSeconds = 300
	QueenBirthAmount          = 1
)

const (
	MaxOfflineHours = 12
	SecondsPerHour  = 3600
)

// DefaultFlowerTypes are planted around every new hive
var DefaultFlowerTypes = []string{"Lavender", "Sunflower", "Clover", "Rosemary", "Poppy"}

// Notification titles
const (
	TitleWelcomeBack      = "Welcome Back!"
	TitleNewBee           = "New Bee!"
	TitleBonusCollected   = "Bonus Collected!"
	TitleHiveUpgraded     = "Hive Upgraded!"
	TitleNotEnoughCoins   = "Not enough BeeCoins!"
	TitleHiveFull         = "Hive is Full!"
	TitleWorkersAcquired  = "Worker Bees Acquired!"
	TitleCapacityReached  = "Hive Reached Capacity"
	TitleInvalidAmount    = "Invalid amount!"
	TitleUnsupportedTrade = "Not for sale!"
)
