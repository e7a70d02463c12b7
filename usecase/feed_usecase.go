package usecase

import (
	"bytes"
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/v2/bson"

	"meetfood/domain/model"
	"meetfood/domain/repository"
	"meetfood/infrastructure/logger"
)

const (
	DefaultPageSize = 4

	SortByPopularity  = "popularity"
	SortByLikes       = "countLike"
	SortByCollections = "countCollections"
	SortByPostTime    = "postTime"
)

type IFeedUsecase interface {
	Fetch(ctx context.Context, query model.FeedQuery) ([]model.FeedItem, error)
}

type feedUsecase struct {
	postRepo repository.IVideoPost
	userRepo repository.IUser
}

func NewFeedUsecase(postRepo repository.IVideoPost, userRepo repository.IUser) IFeedUsecase {
	return &feedUsecase{postRepo: postRepo, userRepo: userRepo}
}

// Fetch ranks every candidate post by the requested field, paginates, and
// resolves author references. The ranking is a pure function of the stored
// counters at query time; there is no cache, so the candidate set is
// re-scanned on every call.
func (u *feedUsecase) Fetch(ctx context.Context, query model.FeedQuery) ([]model.FeedItem, error) {
	query = normalizeQuery(query)

	posts, err := u.postRepo.FindAll(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error loading video posts")
		return nil, err
	}

	rankPosts(posts, query.SortBy, query.SortOrder)

	offset := query.Page * query.Size
	if offset >= len(posts) {
		return []model.FeedItem{}, nil
	}
	end := offset + query.Size
	if end > len(posts) {
		end = len(posts)
	}
	page := posts[offset:end]

	return resolvePosts(ctx, u.userRepo, page)
}

func normalizeQuery(q model.FeedQuery) model.FeedQuery {
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Page < 0 {
		q.Page = 0
	}
	switch q.SortBy {
	case SortByPopularity, SortByLikes, SortByCollections, SortByPostTime:
	default:
		q.SortBy = SortByPopularity
	}
	if q.SortOrder != 1 {
		q.SortOrder = -1
	}
	return q
}

// rankPosts sorts in place by the requested field with a deterministic
// tie-break on id descending, matching the original feed ordering.
func rankPosts(posts []*model.VideoPost, sortBy string, sortOrder int) {
	key := func(p *model.VideoPost) float64 {
		switch sortBy {
		case SortByLikes:
			return float64(p.CountLike)
		case SortByCollections:
			return float64(p.CountCollections)
		case SortByPostTime:
			return float64(p.PostTime.UnixNano())
		default:
			return p.Popularity()
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		ki, kj := key(posts[i]), key(posts[j])
		if ki != kj {
			if sortOrder == 1 {
				return ki < kj
			}
			return ki > kj
		}
		return bytes.Compare(posts[i].ID[:], posts[j].ID[:]) > 0
	})
}

// resolvePosts attaches the owner's public fields and resolves every embedded
// comment's author. A comment whose author no longer exists is anonymized:
// empty name, avatar and author id with the text and date preserved.
func resolvePosts(ctx context.Context, userRepo repository.IUser, posts []*model.VideoPost) ([]model.FeedItem, error) {
	ids := make([]bson.ObjectID, 0, len(posts)*2)
	seen := make(map[bson.ObjectID]struct{})
	collect := func(id bson.ObjectID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, p := range posts {
		collect(p.UserID)
		for _, c := range p.Comments {
			collect(c.User)
		}
	}

	users, err := userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]model.FeedItem, 0, len(posts))
	for _, p := range posts {
		item := model.FeedItem{
			VideoPost:  *p,
			Popularity: p.Popularity(),
			Resolved:   make([]model.ResolvedComment, 0, len(p.Comments)),
		}
		if owner, ok := users[p.UserID]; ok {
			item.Author = owner.PublicProfile()
		}
		for _, c := range p.Comments {
			rc := model.ResolvedComment{Text: c.Text, Date: c.Date}
			if author, ok := users[c.User]; ok {
				rc.Avatar = author.ProfilePhoto
				rc.Name = author.UserName
				rc.User = author.ID.Hex()
			}
			item.Resolved = append(item.Resolved, rc)
		}
		items = append(items, item)
	}
	return items, nil
}

// resolvePost is the single-document variant used by the post detail,
// like and unlike responses.
func resolvePost(ctx context.Context, userRepo repository.IUser, post *model.VideoPost) (*model.FeedItem, error) {
	items, err := resolvePosts(ctx, userRepo, []*model.VideoPost{post})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}
