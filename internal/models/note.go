package models

import "fmt"

// 隐藏面类型
const (
	HiddenTypeText  = "text"
	HiddenTypeImage = "image"
)

type Note struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	MainText          string `json:"mainText" gorm:"type:text;not null"`
	Date              string `json:"date" gorm:"size:10;not null"`
	MarkWithX         bool   `json:"markWithX" gorm:"default:false"`
	HiddenType        string `json:"hiddenType" gorm:"size:10;not null"`
	HiddenDescription string `json:"hiddenDescription,omitempty" gorm:"type:text"`
	HiddenImageURL    string `json:"hiddenImageUrl,omitempty" gorm:"size:512"`
	CreatedAt         int64  `json:"createdAt" gorm:"autoCreateTime:milli;index"`
}

type NoteCreateRequest struct {
	MainText          string `json:"mainText" validate:"required"`
	Date              string `json:"date" validate:"required,datestr"`
	MarkWithX         bool   `json:"markWithX"`
	HiddenType        string `json:"hiddenType" validate:"required,oneof=text image"`
	HiddenDescription string `json:"hiddenDescription"`
	HiddenImageURL    string `json:"hiddenImageUrl"`
}

type NoteListRequest struct {
	Order string `form:"order" validate:"omitempty,oneof=created date"`
}

// NewNote 构造便签，隐藏面只允许文字或图片其中之一
func NewNote(req *NoteCreateRequest) (*Note, error) {
	note := &Note{
		MainText:   req.MainText,
		Date:       req.Date,
		MarkWithX:  req.MarkWithX,
		HiddenType: req.HiddenType,
	}

	switch req.HiddenType {
	case HiddenTypeText:
		if req.HiddenImageURL != "" {
			return nil, fmt.Errorf("文字便签不能携带隐藏图片")
		}
		note.HiddenDescription = req.HiddenDescription
	case HiddenTypeImage:
		if req.HiddenImageURL == "" {
			return nil, fmt.Errorf("图片便签缺少隐藏图片地址")
		}
		if req.HiddenDescription != "" {
			return nil, fmt.Errorf("图片便签不能携带隐藏文字")
		}
		note.HiddenImageURL = req.HiddenImageURL
	default:
		return nil, fmt.Errorf("未知的隐藏面类型: %s", req.HiddenType)
	}

	return note, nil
}
