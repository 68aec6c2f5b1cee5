package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jammon/stationsplan-sub000/internal/model"
)

// PersonRepository 人员数据访问接口
type PersonRepository interface {
	Create(ctx context.Context, person *model.Person) error
	GetByID(ctx context.Context, id string) (*model.Person, error)
	List(ctx context.Context) ([]model.Person, error)
	Update(ctx context.Context, person *model.Person) error
	Delete(ctx context.Context, id string) error
	// ReplaceAll 以事务整体替换人员表
	ReplaceAll(ctx context.Context, persons []model.Person) error
}

// personRepo PersonRepository 的 GORM 实现
type personRepo struct {
	db *gorm.DB
}

// NewPersonRepo 创建 PersonRepository 实例
func NewPersonRepo(db *gorm.DB) PersonRepository {
	return &personRepo{db: db}
}

func (r *personRepo) Create(ctx context.Context, person *model.Person) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *personRepo) GetByID(ctx context.Context, id string) (*model.Person, error) {
	var person model.Person
	err := r.db.WithContext(ctx).
		Where("person_id = ?", id).
		First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepo) List(ctx context.Context) ([]model.Person, error) {
	var persons []model.Person
	err := r.db.WithContext(ctx).
		Order("person_id").
		Find(&persons).Error
	return persons, err
}

func (r *personRepo) Update(ctx context.Context, person *model.Person) error {
	return r.db.WithContext(ctx).Save(person).Error
}

func (r *personRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("person_id = ?", id).
		Delete(&model.Person{}).Error
}

func (r *personRepo) ReplaceAll(ctx context.Context, persons []model.Person) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Person{}).Error; err != nil {
			return err
		}
		if len(persons) == 0 {
			return nil
		}
		return tx.CreateInBatches(persons, 100).Error
	})
}
