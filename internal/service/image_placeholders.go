package service

import (
	"fmt"
	"regexp"
	"strings"
)

var htmlImageSrcPattern = regexp.MustCompile(`(?i)(<img\b[^>]*?\bsrc\s*=\s*)("([^"]*)"|'([^']*)')`)

// imagePlaceholders 在构造 Prompt 前把正文中的图片地址替换为短占位符，拿到结果后再还原。
// 内嵌的 data: 图片可能有几百 KB，直接发送会浪费大量 Token。
type imagePlaceholders struct {
	replacements map[string]string
}

func compressImageSources(input string) (string, *imagePlaceholders) {
	if !htmlImageSrcPattern.MatchString(input) {
		return input, &imagePlaceholders{}
	}

	index := 1
	placeholders := &imagePlaceholders{replacements: make(map[string]string)}

	result := htmlImageSrcPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := htmlImageSrcPattern.FindStringSubmatch(match)
		original := groups[3]
		quote := `"`
		if original == "" && groups[4] != "" {
			original = groups[4]
			quote = "'"
		}
		if original == "" {
			return match
		}

		placeholder := fmt.Sprintf("image://asset-%d", index)
		index++
		placeholders.replacements[placeholder] = original
		return groups[1] + quote + placeholder + quote
	})

	return result, placeholders
}

// Count 返回被替换的图片数量。
func (p *imagePlaceholders) Count() int {
	if p == nil {
		return 0
	}
	return len(p.replacements)
}

// Restore 将占位符恢复为原始地址。
func (p *imagePlaceholders) Restore(input string) string {
	if p.Count() == 0 {
		return input
	}
	output := input
	// 先替换编号大的，避免 asset-1 命中 asset-10 的前缀。
	for i := len(p.replacements); i >= 1; i-- {
		placeholder := fmt.Sprintf("image://asset-%d", i)
		if original, ok := p.replacements[placeholder]; ok {
			output = strings.ReplaceAll(output, placeholder, original)
		}
	}
	return output
}
