package service

import "strings"

const recipePromptTemplate = `Ты - опытный шеф-повар. Пользователь предоставил эти ингредиенты:

{{ingredients}}

СОЗДАЙ 2-3 РАЗНЫХ РЕЦЕПТА:

📋 РЕЦЕПТ 1: [Название]
🍽️ Тип: [завтрак/обед/ужин/десерт]
⏱️ Время: [приготовления]
📖 Ингредиенты:
- [список]
👨‍🍳 Инструкция:
1. [шаг 1]
2. [шаг 2]

📋 РЕЦЕПТ 2: [Название]
🍽️ Тип: [завтрак/обед/ужин/десерт]
⏱️ Время: [приготовления]
📖 Ингредиенты:
- [список]
👨‍🍳 Инструкция:
1. [шаг 1]
2. [шаг 2]

📋 РЕЦЕПТ 3: [Название] (опционально)
🍽️ Тип: [завтрак/обед/ужин/десерт]
⏱️ Время: [приготовления]
📖 Ингредиенты:
- [список]
👨‍🍳 Инструкция:
1. [шаг 1]
2. [шаг 2]

💡 СОВЕТЫ:
- [Общие советы по использованию этих ингредиентов]

Будь креативным! Можно добавлять базовые ингредиенты (соль, перец, масло), но основу составляй из предоставленных.`

const socialPromptTemplate = `На основе этих рецептов создай контент для кулинарного блогера:

{{recipes}}

СОЗДАЙ КОНТЕНТ ДЛЯ СОЦСЕТЕЙ:

📸 INSTAGRAM ПОСТ:
Заголовок: [Яркий, привлекающий внимание]
Текст: [Краткое описание + призыв к действию]
Хештеги: [5-7 релевантных хештегов]

🎥 REELS/TIKTOK ИДЕЯ:
Тема: [Идея для видео]
Сценарий: [Краткий сценарий на 15-30 секунд]
Тренды: [Какие тренды использовать]

📝 БЛОГ ПОСТ:
Заголовок: [SEO-оптимизированный]
Введение: [Захватывающее введение]
Ключевые моменты: [3-4 ключевых пункта]

🔍 СОВЕТ ДЛЯ АУДИТОРИИ:
[Полезный совет или лайфхак]

Сделай контент привлекательным, полезным и готовым к публикации!`

// BuildRecipePrompt asks the model for 2-3 labeled recipes built from the given
// ingredients. The input is embedded verbatim.
func BuildRecipePrompt(ingredients string) string {
	return strings.Replace(recipePromptTemplate, "{{ingredients}}", ingredients, 1)
}

// BuildSocialPrompt asks the model for social-media content (post, short video
// script, blog post, audience tip) derived from previously generated recipes.
func BuildSocialPrompt(recipeText string) string {
	return strings.Replace(socialPromptTemplate, "{{recipes}}", recipeText, 1)
}
