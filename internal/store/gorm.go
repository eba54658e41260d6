package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ietfmeet/internal/model"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) GetMeetingByNumber(ctx context.Context, number string) (*model.Meeting, error) {
	var m model.Meeting
	err := g.db.WithContext(ctx).Where("number = ?", number).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (g *GormStore) GetMeetingByID(ctx context.Context, id uint) (*model.Meeting, error) {
	var m model.Meeting
	err := g.db.WithContext(ctx).First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (g *GormStore) SaveMeeting(ctx context.Context, m *model.Meeting) error {
	return g.db.WithContext(ctx).Save(m).Error
}

func (g *GormStore) ListMeetings(ctx context.Context) ([]*model.Meeting, error) {
	var meetings []*model.Meeting
	err := g.db.WithContext(ctx).Order("number desc").Find(&meetings).Error
	return meetings, err
}

func (g *GormStore) GetAreaByName(ctx context.Context, name string) (*model.Area, error) {
	var a model.Area
	err := g.db.WithContext(ctx).Where("name = ?", name).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (g *GormStore) SaveArea(ctx context.Context, a *model.Area) error {
	return g.db.WithContext(ctx).Save(a).Error
}

func (g *GormStore) GetGroupByAcronym(ctx context.Context, acronym string) (*model.Group, error) {
	var grp model.Group
	err := g.db.WithContext(ctx).Where("acronym = ?", acronym).First(&grp).Error
	if err != nil {
		return nil, err
	}
	return &grp, nil
}

func (g *GormStore) GetGroupByID(ctx context.Context, id uint) (*model.Group, error) {
	var grp model.Group
	err := g.db.WithContext(ctx).First(&grp, id).Error
	if err != nil {
		return nil, err
	}
	return &grp, nil
}

func (g *GormStore) SaveGroup(ctx context.Context, grp *model.Group) error {
	return g.db.WithContext(ctx).Save(grp).Error
}

func (g *GormStore) GetLocationByRemoteID(ctx context.Context, id int64) (*model.Location, error) {
	var l model.Location
	err := g.db.WithContext(ctx).Where("remote_id = ?", id).First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (g *GormStore) GetLocationByID(ctx context.Context, id uint) (*model.Location, error) {
	var l model.Location
	err := g.db.WithContext(ctx).First(&l, id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (g *GormStore) GetLocationByName(ctx context.Context, meetingID uint, name string) (*model.Location, error) {
	var l model.Location
	err := g.db.WithContext(ctx).Where("meeting_id = ? AND name = ?", meetingID, name).First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (g *GormStore) SaveLocation(ctx context.Context, l *model.Location) error {
	return g.db.WithContext(ctx).Save(l).Error
}

func (g *GormStore) GetSessionByRemoteID(ctx context.Context, id int64) (*model.Session, error) {
	var s model.Session
	err := g.db.WithContext(ctx).Where("remote_id = ?", id).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (g *GormStore) SaveSession(ctx context.Context, s *model.Session) error {
	return g.db.WithContext(ctx).Save(s).Error
}

func (g *GormStore) ListSessionsByMeeting(ctx context.Context, meetingID uint) ([]*model.Session, error) {
	var sessions []*model.Session
	err := g.db.WithContext(ctx).Where("meeting_id = ?", meetingID).Order("starts_at").Find(&sessions).Error
	return sessions, err
}

func (g *GormStore) GetPresentationByResourceURI(ctx context.Context, uri string) (*model.Presentation, error) {
	var p model.Presentation
	err := g.db.WithContext(ctx).Where("resource_uri = ?", uri).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (g *GormStore) SavePresentation(ctx context.Context, p *model.Presentation) error {
	return g.db.WithContext(ctx).Save(p).Error
}

func (g *GormStore) GetDocumentByRemoteID(ctx context.Context, id int64) (*model.Document, error) {
	var d model.Document
	err := g.db.WithContext(ctx).Where("remote_id = ?", id).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (g *GormStore) SaveDocument(ctx context.Context, d *model.Document) error {
	return g.db.WithContext(ctx).Save(d).Error
}

func (g *GormStore) ListGroupDocuments(ctx context.Context, groupID uint) ([]*model.Document, error) {
	var docs []*model.Document
	err := g.db.WithContext(ctx).Where("group_id = ?", groupID).Order("name").Find(&docs).Error
	return docs, err
}

func (g *GormStore) GetDownloadByBasename(ctx context.Context, basename string) (*model.Download, error) {
	var d model.Download
	err := g.db.WithContext(ctx).Where("basename = ?", basename).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (g *GormStore) SaveDownload(ctx context.Context, d *model.Download) error {
	return g.db.WithContext(ctx).Save(d).Error
}

func (g *GormStore) DeleteDownload(ctx context.Context, basename string) error {
	// Hard delete: a soft-deleted row would keep holding the basename's
	// unique index and block a later re-download.
	return g.db.WithContext(ctx).Unscoped().Where("basename = ?", basename).Delete(&model.Download{}).Error
}

func (g *GormStore) ListDownloads(ctx context.Context) ([]*model.Download, error) {
	var downloads []*model.Download
	err := g.db.WithContext(ctx).Order("basename").Find(&downloads).Error
	return downloads, err
}

func (g *GormStore) SumDownloadSizes(ctx context.Context) (int64, error) {
	var total int64
	err := g.db.WithContext(ctx).Model(&model.Download{}).
		Select("coalesce(sum(filesize), 0)").Scan(&total).Error
	return total, err
}

func (g *GormStore) GetRFCByName(ctx context.Context, name string) (*model.RFC, error) {
	var r model.RFC
	err := g.db.WithContext(ctx).Where("name = ?", name).First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (g *GormStore) SaveRFC(ctx context.Context, r *model.RFC) error {
	return g.db.WithContext(ctx).Save(r).Error
}

func (g *GormStore) CountRFCs(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.RFC{}).Count(&count).Error
	return count, err
}

func (g *GormStore) LinkRFCUpdates(ctx context.Context, src, dst *model.RFC) error {
	edge := model.RFCUpdate{RFCID: src.ID, TargetID: dst.ID}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
}

func (g *GormStore) LinkRFCObsoletes(ctx context.Context, src, dst *model.RFC) error {
	edge := model.RFCObsolete{RFCID: src.ID, TargetID: dst.ID}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
}

func (g *GormStore) RFCUpdates(ctx context.Context, name string) ([]*model.RFC, error) {
	return g.linkedRFCs(ctx, name, "rfc_updates", false)
}

func (g *GormStore) RFCUpdatedBy(ctx context.Context, name string) ([]*model.RFC, error) {
	return g.linkedRFCs(ctx, name, "rfc_updates", true)
}

func (g *GormStore) RFCObsoletes(ctx context.Context, name string) ([]*model.RFC, error) {
	return g.linkedRFCs(ctx, name, "rfc_obsoletes", false)
}

func (g *GormStore) RFCObsoletedBy(ctx context.Context, name string) ([]*model.RFC, error) {
	return g.linkedRFCs(ctx, name, "rfc_obsoletes", true)
}

// linkedRFCs walks one edge table in either direction. The inverse relations
// (updated-by, obsoleted-by) are the same rows joined the other way around.
func (g *GormStore) linkedRFCs(ctx context.Context, name, table string, inverse bool) ([]*model.RFC, error) {
	from, to := "rfc_id", "target_id"
	if inverse {
		from, to = to, from
	}

	var rfcs []*model.RFC
	err := g.db.WithContext(ctx).Model(&model.RFC{}).
		Joins("JOIN "+table+" ON "+table+"."+to+" = rfcs.id").
		Joins("JOIN rfcs src ON src.id = "+table+"."+from).
		Where("src.name = ?", name).
		Order("rfcs.name").
		Find(&rfcs).Error
	return rfcs, err
}

func (g *GormStore) FirstOrCreateAuthor(ctx context.Context, name string) (*model.Author, error) {
	var a model.Author
	err := g.db.WithContext(ctx).Where(model.Author{Name: name}).FirstOrCreate(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (g *GormStore) FirstOrCreateFormat(ctx context.Context, name string) (*model.DocFormat, error) {
	var f model.DocFormat
	err := g.db.WithContext(ctx).Where(model.DocFormat{Name: name}).FirstOrCreate(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (g *GormStore) FirstOrCreateKeyword(ctx context.Context, name string) (*model.Keyword, error) {
	var k model.Keyword
	err := g.db.WithContext(ctx).Where(model.Keyword{Name: name}).FirstOrCreate(&k).Error
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (g *GormStore) GetSetting(ctx context.Context, key string) (string, error) {
	var s model.Setting
	err := g.db.WithContext(ctx).Where("key = ?", key).First(&s).Error
	if err != nil {
		return "", err
	}
	return s.Value, nil
}

func (g *GormStore) PutSetting(ctx context.Context, key, value string) error {
	s := model.Setting{Key: key, Value: value}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&s).Error
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
