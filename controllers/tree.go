package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/controllers/auth"
	"github.com/teamvolt/binex/controllers/entities"
	"github.com/teamvolt/binex/controllers/helpers"
	"github.com/teamvolt/binex/controllers/queries"
	"github.com/teamvolt/binex/models"
)

const defaultTreeDepth = 3
const maxTreeDepth = 10

func GetTree(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	return renderTree(c, CurrentUser, CurrentUser.UID)
}

func GetTreeByUID(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	return renderTree(c, CurrentUser, c.Params("uid"))
}

func renderTree(c *fiber.Ctx, CurrentUser *models.Member, uid string) error {
	params := new(queries.TreeQuery)
	if err := c.QueryParser(params); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_query"},
		})
	}

	if params.Depth <= 0 {
		params.Depth = defaultTreeDepth
	}
	if params.Depth > maxTreeDepth {
		params.Depth = maxTreeDepth
	}

	var node *models.TreeNode
	if result := config.DataBase.First(&node, "company_id = ? AND member_uid = ?", CurrentUser.CompanyID, uid); result.Error != nil {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"record.not_found"},
		})
	}

	if uid != CurrentUser.UID && CurrentUser.Role != "admin" && CurrentUser.Role != "superadmin" {
		if !inDownline(CurrentUser, node) {
			return c.Status(422).JSON(helpers.Errors{
				Errors: []string{"authz.invalid_permission"},
			})
		}
	}

	return c.Status(200).JSON(buildSubtree(CurrentUser.CompanyID, node, params.Depth))
}

// inDownline walks the placement chain upward from node looking for the
// member. The chain is at most tree-height long, never cyclic.
func inDownline(member *models.Member, node *models.TreeNode) bool {
	current := node

	for current.ParentID.Valid {
		var parent *models.TreeNode
		if result := config.DataBase.First(&parent, "company_id = ? AND id = ?", node.CompanyID, current.ParentID.Uint64); result.Error != nil {
			return false
		}

		if parent.MemberUID == member.UID {
			return true
		}

		current = parent
	}

	return false
}

func buildSubtree(company_id string, node *models.TreeNode, depth int) *entities.TreeNode {
	entity := &entities.TreeNode{
		MemberUID:   node.MemberUID,
		OwnVolume:   node.OwnVolume,
		LeftVolume:  node.LeftVolume,
		RightVolume: node.RightVolume,
		TotalVolume: node.TotalVolume,
		LeftCount:   node.LeftCount,
		RightCount:  node.RightCount,
		TotalCount:  node.TotalCount,
	}

	if depth <= 1 {
		return entity
	}

	if node.LeftID.Valid {
		var left *models.TreeNode
		if result := config.DataBase.First(&left, "company_id = ? AND id = ?", company_id, node.LeftID.Uint64); result.Error == nil {
			entity.Left = buildSubtree(company_id, left, depth-1)
		}
	}

	if node.RightID.Valid {
		var right *models.TreeNode
		if result := config.DataBase.First(&right, "company_id = ? AND id = ?", company_id, node.RightID.Uint64); result.Error == nil {
			entity.Right = buildSubtree(company_id, right, depth-1)
		}
	}

	return entity
}
