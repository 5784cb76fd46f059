package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeImage = "image/"
)

var AllowedImageExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".gif"}

// EmotionLabels 分类模型的输出顺序，与训练时保持一致
var EmotionLabels = []string{"happy", "sad", "angry", "embarrassed", "fear", "envy"}
