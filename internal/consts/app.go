package consts

const ApplicationName = "FrameSync"

// ApplicationVersion 发布时通过 -ldflags "-X" 覆盖
var ApplicationVersion = "dev"

// 命令行默认值
const (
	DefaultConfigDir       = "config"
	DefaultRoutesFile      = "routes.json"
	DefaultBackfillWorkers = 4
)
