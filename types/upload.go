package types

type UploadResponse struct {
	Key       string `json:"key"`        // container/path
	PublicURL string `json:"public_url"` // 公开访问地址
	Size      int64  `json:"size"`
}
