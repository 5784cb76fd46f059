package util

import "strings"

// NormalizeEmotion 情绪标签统一小写去空格
func NormalizeEmotion(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// ImageSrc 由徽章名称生成前端图片标识
func ImageSrc(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
