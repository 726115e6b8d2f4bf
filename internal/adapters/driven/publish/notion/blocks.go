package notion

import (
	"github.com/jomei/notionapi"

	"github.com/custodia-labs/echopress/internal/core/domain"
)

// maxTextLength is Notion's per-rich-text content ceiling.
const maxTextLength = 2000

// toNotionBlocks maps the flat domain block tree onto Notion API blocks.
func toNotionBlocks(blocks []domain.Block) []notionapi.Block {
	out := make([]notionapi.Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, toNotionBlock(b))
	}
	return out
}

func toNotionBlock(b domain.Block) notionapi.Block {
	switch b.Type {
	case domain.BlockHeading:
		return headingBlock(b)

	case domain.BlockBulletedItem:
		return &notionapi.BulletedListItemBlock{
			BasicBlock:       basicBlock(notionapi.BlockTypeBulletedListItem),
			BulletedListItem: notionapi.ListItem{RichText: toRichText(b.Runs)},
		}

	case domain.BlockNumberedItem:
		return &notionapi.NumberedListItemBlock{
			BasicBlock:       basicBlock(notionapi.BlockTypeNumberedListItem),
			NumberedListItem: notionapi.ListItem{RichText: toRichText(b.Runs)},
		}

	case domain.BlockCode:
		return &notionapi.CodeBlock{
			BasicBlock: basicBlock(notionapi.BlockTypeCode),
			Code: notionapi.Code{
				RichText: plainRichText(b.Code),
				Language: codeLanguage(b.Language),
			},
		}

	case domain.BlockQuote:
		return &notionapi.QuoteBlock{
			BasicBlock: basicBlock(notionapi.BlockTypeQuote),
			Quote:      notionapi.Quote{RichText: toRichText(b.Runs)},
		}

	default:
		return &notionapi.ParagraphBlock{
			BasicBlock: basicBlock(notionapi.BlockTypeParagraph),
			Paragraph:  notionapi.Paragraph{RichText: toRichText(b.Runs)},
		}
	}
}

func headingBlock(b domain.Block) notionapi.Block {
	heading := notionapi.Heading{RichText: toRichText(b.Runs)}
	switch b.Level {
	case 1:
		return &notionapi.Heading1Block{
			BasicBlock: basicBlock(notionapi.BlockTypeHeading1),
			Heading1:   heading,
		}
	case 2:
		return &notionapi.Heading2Block{
			BasicBlock: basicBlock(notionapi.BlockTypeHeading2),
			Heading2:   heading,
		}
	default:
		return &notionapi.Heading3Block{
			BasicBlock: basicBlock(notionapi.BlockTypeHeading3),
			Heading3:   heading,
		}
	}
}

func basicBlock(blockType notionapi.BlockType) notionapi.BasicBlock {
	return notionapi.BasicBlock{
		Object: notionapi.ObjectTypeBlock,
		Type:   blockType,
	}
}

// toRichText maps styled runs to Notion rich text, splitting any run
// that exceeds the API's content ceiling.
func toRichText(runs []domain.TextRun) []notionapi.RichText {
	var out []notionapi.RichText
	for _, run := range runs {
		for _, chunk := range splitText(run.Text) {
			rt := notionapi.RichText{
				Type: notionapi.ObjectTypeText,
				Text: &notionapi.Text{Content: chunk},
			}
			if run.Link != "" {
				rt.Text.Link = &notionapi.Link{Url: run.Link}
			}
			if run.Bold || run.Italic || run.Code {
				rt.Annotations = &notionapi.Annotations{
					Bold:   run.Bold,
					Italic: run.Italic,
					Code:   run.Code,
				}
			}
			out = append(out, rt)
		}
	}
	return out
}

func plainRichText(text string) []notionapi.RichText {
	var out []notionapi.RichText
	for _, chunk := range splitText(text) {
		out = append(out, notionapi.RichText{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{Content: chunk},
		})
	}
	return out
}

// splitText cuts text into chunks within the API ceiling. Empty text
// still yields one empty chunk so blocks keep their rich text array.
func splitText(text string) []string {
	if len(text) <= maxTextLength {
		return []string{text}
	}
	var chunks []string
	runes := []rune(text)
	for len(runes) > maxTextLength {
		chunks = append(chunks, string(runes[:maxTextLength]))
		runes = runes[maxTextLength:]
	}
	return append(chunks, string(runes))
}

// notionLanguages is the subset of Notion's code language enum the
// converter can meet. Anything else degrades to plain text.
var notionLanguages = map[string]bool{
	"bash": true, "c": true, "c++": true, "c#": true, "css": true,
	"go": true, "html": true, "java": true, "javascript": true,
	"json": true, "kotlin": true, "markdown": true, "php": true,
	"python": true, "ruby": true, "rust": true, "scala": true,
	"shell": true, "sql": true, "swift": true, "typescript": true,
	"yaml": true, "plain text": true,
}

// codeLanguage maps common fence labels onto Notion's enum.
func codeLanguage(lang string) string {
	switch lang {
	case "":
		return "plain text"
	case "py":
		return "python"
	case "js":
		return "javascript"
	case "ts":
		return "typescript"
	case "sh", "zsh":
		return "shell"
	case "golang":
		return "go"
	}
	if notionLanguages[lang] {
		return lang
	}
	return "plain text"
}
