package dto

// UploadResponse адрес сохраненного файла относительно корня сервера
type UploadResponse struct {
	Path string `json:"path"`
}
