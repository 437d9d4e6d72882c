package notionexport

import (
	"fmt"
	"time"

	"github.com/dvloznov/wealthwise/internal/domain"
	"github.com/jomei/notionapi"
)

// InsightToNotionProperties converts one stored insight to Notion properties.
// The insight's ledger id goes into the "Insight ID" rich-text property so
// repeated syncs can skip pages that already exist.
func InsightToNotionProperties(userID string, in domain.Insight) notionapi.Properties {
	props := notionapi.Properties{
		"Insight": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: in.Message,
					},
				},
			},
		},
		"Insight ID": notionapi.RichTextProperty{
			RichText: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: in.ID,
					},
				},
			},
		},
		"User": notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: userID,
			},
		},
	}

	if !in.Date.IsZero() {
		props["Date"] = notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: func() *notionapi.Date {
					d := notionapi.Date(in.Date)
					return &d
				}(),
			},
		}
	}

	return props
}

// SummaryToNotionProperties converts one monthly category total to Notion
// properties.
func SummaryToNotionProperties(userID string, month time.Time, category string, total float64) notionapi.Properties {
	label := fmt.Sprintf("%s - %s", month.Format("Jan 2006"), category)

	return notionapi.Properties{
		"Summary": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: label,
					},
				},
			},
		},
		"Category": notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: category,
			},
		},
		"Total": notionapi.NumberProperty{
			Number: total,
		},
		"Month": notionapi.RichTextProperty{
			RichText: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: month.Format("2006-01"),
					},
				},
			},
		},
		"User": notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: userID,
			},
		},
	}
}

// extractInsightID reads the "Insight ID" property back from a Notion page.
// Returns empty string if not found.
func extractInsightID(page notionapi.Page) string {
	if prop, ok := page.Properties["Insight ID"]; ok {
		if richText, ok := prop.(*notionapi.RichTextProperty); ok {
			if len(richText.RichText) > 0 {
				return richText.RichText[0].PlainText
			}
		}
	}
	return ""
}
