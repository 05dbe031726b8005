package dto

type SetNameRequest struct {
	Name string `json:"name"`
}

type UserInfoResponse struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}
