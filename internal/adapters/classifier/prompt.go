package classifier

import "strings"

// SystemPrompt frames the model as a spoiler detector for anime danmaku
const SystemPrompt = "你是一个专业的剧透检测助手，擅长识别番剧弹幕中的剧透内容。"

// criteria are the spoiler rules embedded in every user prompt
var criteria = []string{
	"透露后续剧情发展",
	"暴露关键转折或反转",
	"揭示角色命运（死亡、背叛等）",
	"提及尚未出现的人物或事件",
	"讨论结局相关内容",
	"来自原作党的剧情透露",
}

// UserPrompt embeds the title context, the criteria and one numbered batch
// the model is asked for comma separated indices or the literal 无
func UserPrompt(batchText, title, episodeTitle string) string {
	var b strings.Builder
	b.Grow(len(batchText) + 512)
	b.WriteString("你是一个专业的番剧剧透检测助手。请分析以下来自番剧《")
	b.WriteString(title)
	b.WriteString("》")
	b.WriteString(episodeTitle)
	b.WriteString("的弹幕内容，识别其中包含剧透的弹幕。\n\n剧透判断标准：\n")
	for i, c := range criteria {
		b.WriteByte(byte('1' + i))
		b.WriteString(". ")
		b.WriteString(c)
		b.WriteByte('\n')
	}
	b.WriteString("\n请只返回包含剧透的弹幕序号，用逗号分隔，如果没有剧透则返回\"无\"。\n")
	b.WriteString("注意：仅当弹幕明确包含剧透信息时才标记，普通的感想、吐槽、表情不算剧透。\n\n弹幕列表：\n")
	b.WriteString(batchText)
	return b.String()
}
