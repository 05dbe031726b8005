package dto

type SystemInfoResponse struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
}

type ServerStatsResponse struct {
	Users       int64              `json:"users"`
	Devices     int64              `json:"devices"`
	Images      int64              `json:"images"`
	Assignments int64              `json:"assignments"`
	Thumbnails  int64              `json:"thumbnails"`
	TotalBytes  int64              `json:"total_bytes"`
	SystemInfo  SystemInfoResponse `json:"system_info"`
}
